// Package showcase implements the showcase origin: a directory of YAML
// files in a GitHub repository, one site per file. Only sites tagged with
// the configured category (default "starlight") are kept.
package showcase

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/starlist/internal/transport"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/sources"
)

// Source lists and downloads showcase files.
type Source struct {
	client  *transport.Client
	apiBase string
	repo    string
	dir     string
	tag     string
	parser  sources.Parser
}

// Option configures a showcase source.
type Option func(*Source)

// WithClient sets the transport client, normally an authenticated GitHub client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithAPIBase overrides the GitHub API base URL.
func WithAPIBase(base string) Option {
	return func(s *Source) {
		s.apiBase = strings.TrimSuffix(base, "/")
	}
}

// WithRepository sets the owner/name repository and directory to list.
func WithRepository(repo, dir string) Option {
	return func(s *Source) {
		if repo != "" {
			s.repo = repo
		}
		if dir != "" {
			s.dir = strings.Trim(dir, "/")
		}
	}
}

// WithTag sets the category a site must carry to be kept.
func WithTag(tag string) Option {
	return func(s *Source) {
		if tag != "" {
			s.tag = tag
		}
	}
}

// New creates a showcase source.
func New(opts ...Option) *Source {
	s := &Source{
		client:  transport.NewGitHub(""),
		apiBase: constants.GitHubAPIURL,
		repo:    constants.DefaultShowcaseRepo,
		dir:     constants.DefaultShowcaseDir,
		tag:     constants.DefaultShowcaseTag,
		parser:  Parser{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the ID of this source.
func (s *Source) ID() sources.ID {
	return sources.ShowcaseID
}

type content struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Fetch lists the directory and parses every YAML file in it. A file that
// cannot be downloaded or parsed is skipped.
func (s *Source) Fetch(ctx context.Context) ([]sources.Candidate, error) {
	logger := logging.FromContext(ctx)

	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", s.apiBase, s.repo, s.dir)
	var listing []content
	if err := s.client.GetJSON(ctx, "github", endpoint, &listing); err != nil {
		return nil, errors.NewSourceError(string(s.ID()), err)
	}

	files := make([]content, 0, len(listing))
	for _, c := range listing {
		ext := strings.ToLower(path.Ext(c.Name))
		if c.Type == "file" && c.DownloadURL != "" && (ext == ".yml" || ext == ".yaml") {
			files = append(files, c)
		}
	}

	parsed := make([][]catalogs.Item, len(files))
	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			items, err := s.download(ctx, f.DownloadURL)
			if err != nil {
				logger.Warn().Err(err).Str("file", f.Name).Msg("skipping showcase file")
				return nil
			}
			parsed[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var out []sources.Candidate
	for _, items := range parsed {
		for _, item := range items {
			if !item.HasKeyword(s.tag) {
				continue
			}
			out = append(out, sources.Candidate{
				Item:     item,
				Category: catalogs.CategoryShowcase,
				Source:   s.ID(),
			})
		}
	}

	logger.Debug().Int("files", len(files)).Int("sites", len(out)).Msg("showcase listed")
	return out, nil
}

func (s *Source) download(ctx context.Context, url string) ([]catalogs.Item, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, errors.WrapResource("download", "showcase file", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError("github", resp.StatusCode, "download "+url)
	}
	return s.parser.Parse(resp.Body)
}
