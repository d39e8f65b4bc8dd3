// Package registry implements the package-registry origin: a keyword search
// against the npm registry. Packages carry no category, so every candidate
// is left for the classifier.
package registry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/starlist/internal/transport"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/sources"
)

// Source searches the registry.
type Source struct {
	client   *transport.Client
	baseURL  string
	query    string
	pageSize int
	maxPages int
}

// Option configures a registry source.
type Option func(*Source)

// WithBaseURL overrides the registry base URL.
func WithBaseURL(u string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithQuery sets the search text, e.g. "keywords:starlight-plugin".
func WithQuery(q string) Option {
	return func(s *Source) {
		if q != "" {
			s.query = q
		}
	}
}

// WithPageSize sets how many results are requested per page.
func WithPageSize(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a registry source.
func New(opts ...Option) *Source {
	s := &Source{
		client:   transport.New(),
		baseURL:  constants.NPMRegistryURL,
		query:    constants.DefaultRegistryQuery,
		pageSize: constants.RegistrySearchSize,
		maxPages: 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the ID of this source.
func (s *Source) ID() sources.ID {
	return sources.RegistryID
}

type searchResponse struct {
	Objects []struct {
		Package pkg `json:"package"`
	} `json:"objects"`
	Total int `json:"total"`
}

type pkg struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Links       struct {
		NPM        string `json:"npm"`
		Homepage   string `json:"homepage"`
		Repository string `json:"repository"`
	} `json:"links"`
}

// link prefers the repository, then the homepage, then the registry page.
func (p pkg) link() string {
	for _, u := range []string{p.Links.Repository, p.Links.Homepage, p.Links.NPM} {
		if u = strings.TrimSpace(u); u != "" {
			return u
		}
	}
	return ""
}

// Fetch pages through the search results.
func (s *Source) Fetch(ctx context.Context) ([]sources.Candidate, error) {
	logger := logging.FromContext(ctx)

	var out []sources.Candidate
	seen := make(map[string]bool)
	for page := 0; page < s.maxPages; page++ {
		from := page * s.pageSize
		endpoint := fmt.Sprintf("%s/-/v1/search?text=%s&size=%d&from=%d",
			s.baseURL, url.QueryEscape(s.query), s.pageSize, from)

		var resp searchResponse
		if err := s.client.GetJSON(ctx, "npm", endpoint, &resp); err != nil {
			return nil, errors.NewSourceError(string(s.ID()), err)
		}

		for _, obj := range resp.Objects {
			p := obj.Package
			link := p.link()
			if p.Name == "" || link == "" || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			out = append(out, sources.Candidate{
				Item:   catalogs.NewItem(p.Name, link, p.Description, p.Keywords...),
				Source: s.ID(),
			})
		}

		if len(resp.Objects) < s.pageSize || from+len(resp.Objects) >= resp.Total {
			break
		}
	}

	logger.Debug().Str("query", s.query).Int("packages", len(out)).Msg("registry searched")
	return out, nil
}
