// Package feed implements the feed origin: RSS or Atom feeds listing
// articles and videos about Starlight.
package feed

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

// videoHosts are hosts whose links are categorized as videos.
var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// Source reads a list of feeds.
type Source struct {
	client *transport.Client
	urls   []string
	filter string
	parser sources.Parser
}

// Option configures a feed source.
type Option func(*Source)

// WithURLs sets the feeds to read.
func WithURLs(urls ...string) Option {
	return func(s *Source) {
		s.urls = append(s.urls, urls...)
	}
}

// WithFilter keeps only entries mentioning term in their title,
// description or categories. An empty term keeps everything.
func WithFilter(term string) Option {
	return func(s *Source) {
		s.filter = strings.ToLower(strings.TrimSpace(term))
	}
}

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a feed source.
func New(opts ...Option) *Source {
	s := &Source{
		client: transport.New(),
		parser: Parser{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the ID of this source.
func (s *Source) ID() sources.ID {
	return sources.FeedID
}

// Fetch reads every feed concurrently. A broken feed is skipped; the
// origin fails only when every feed failed.
func (s *Source) Fetch(ctx context.Context) ([]sources.Candidate, error) {
	logger := logging.FromContext(ctx)

	results := make([][]catalogs.Item, len(s.urls))
	errs := make([]error, len(s.urls))

	var g errgroup.Group
	for i, u := range s.urls {
		g.Go(func() error {
			results[i], errs[i] = s.read(ctx, u)
			if errs[i] != nil {
				logger.Warn().Err(errs[i]).Str("feed", u).Msg("skipping feed")
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
			if !s.matches(item) {
				continue
			}
			out = append(out, sources.Candidate{
				Item:     item,
				Category: Categorize(item.URL),
				Source:   s.ID(),
			})
		}
	}

	if len(s.urls) > 0 && failed == len(s.urls) {
		return nil, errors.NewSourceError(string(s.ID()), errs[0])
	}
	return out, nil
}

func (s *Source) read(ctx context.Context, u string) ([]catalogs.Item, error) {
	resp, err := s.client.Get(ctx, u)
	if err != nil {
		return nil, errors.WrapResource("fetch", "feed", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{Service: "feed", StatusCode: resp.StatusCode, Endpoint: u, Message: resp.Status}
	}
	return s.parser.Parse(resp.Body)
}

func (s *Source) matches(item catalogs.Item) bool {
	if s.filter == "" {
		return true
	}
	text := strings.ToLower(item.Title + " " + item.Description + " " + strings.Join(item.Keywords, " "))
	return strings.Contains(text, s.filter)
}

// Categorize returns video for links to video hosts and article otherwise.
func Categorize(link string) catalogs.Category {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return catalogs.CategoryArticle
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range videoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return catalogs.CategoryVideo
		}
	}
	return catalogs.CategoryArticle
}
