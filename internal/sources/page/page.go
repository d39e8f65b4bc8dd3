// Package page implements the link-page origin: HTML pages that list
// add-ons as links, grouped under headings.
package page

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/starlist/internal/transport"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/sources"
)

// Source reads a list of link pages.
type Source struct {
	client   *transport.Client
	urls     []string
	selector string
}

// Option configures a page source.
type Option func(*Source)

// WithURLs sets the pages to read.
func WithURLs(urls ...string) Option {
	return func(s *Source) {
		s.urls = append(s.urls, urls...)
	}
}

// WithSelector overrides the CSS selector for headings and links.
func WithSelector(selector string) Option {
	return func(s *Source) {
		s.selector = selector
	}
}

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a page source.
func New(opts ...Option) *Source {
	s := &Source{client: transport.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the ID of this source.
func (s *Source) ID() sources.ID {
	return sources.PageID
}

// Fetch reads every page concurrently. Links under a heading naming a
// category ("Themes", "Tools", ...) get that category; the rest are left
// to the classifier. Links back to the page's own host are ignored.
func (s *Source) Fetch(ctx context.Context) ([]sources.Candidate, error) {
	logger := logging.FromContext(ctx)

	results := make([][]catalogs.Item, len(s.urls))
	errs := make([]error, len(s.urls))

	var g errgroup.Group
	for i, u := range s.urls {
		g.Go(func() error {
			results[i], errs[i] = s.read(ctx, u)
			if errs[i] != nil {
				logger.Warn().Err(errs[i]).Str("page", u).Msg("skipping page")
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []sources.Candidate
	failed := 0
	for i, items := range results {
		if errs[i] != nil {
			failed++
			continue
		}
		for _, item := range items {
			out = append(out, sources.Candidate{
				Item:     item,
				Category: sectionCategory(item),
				Source:   s.ID(),
			})
		}
	}

	if len(s.urls) > 0 && failed == len(s.urls) {
		return nil, errors.NewSourceError(string(s.ID()), errs[0])
	}
	return out, nil
}

func (s *Source) read(ctx context.Context, raw string) ([]catalogs.Item, error) {
	base, err := url.Parse(raw)
	if err != nil {
		return nil, errors.NewValidationError("page", raw, "invalid page URL")
	}

	resp, err := s.client.Get(ctx, raw)
	if err != nil {
		return nil, errors.WrapResource("fetch", "page", raw, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{Service: "page", StatusCode: resp.StatusCode, Endpoint: raw, Message: resp.Status}
	}

	items, err := Parser{Base: base, Selector: s.selector}.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	external := items[:0]
	for _, item := range items {
		if u, err := url.Parse(item.URL); err == nil && !strings.EqualFold(u.Host, base.Host) {
			external = append(external, item)
		}
	}
	return external, nil
}

// sectionCategory maps the heading keyword of item onto a category.
func sectionCategory(item catalogs.Item) catalogs.Category {
	for _, k := range item.Keywords {
		if c, ok := catalogs.ParseCategory(k); ok {
			return c
		}
	}
	return ""
}
