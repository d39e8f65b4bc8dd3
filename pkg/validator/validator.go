// Package validator decides whether a catalog link is live and legitimate.
//
// Repository URLs on GitHub are checked through the repository API: forks
// are rejected, missing repositories are rejected, and a 403 (usually an
// exhausted rate limit) is treated as live so that a quota problem never
// empties the catalog. Every other URL is probed with HEAD, falling back to
// GET for servers that refuse HEAD.
//
// Verdicts are memoized per normalized URL in a Cache owned by the run.
package validator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/starlist/internal/transport"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/normalize"
)

// Strategy names used in log fields.
const (
	StrategyRepository = "repository"
	StrategyProbe      = "probe"
)

// Validator checks links. It is safe for concurrent use.
type Validator struct {
	cache        *Cache
	github       *transport.Client
	probe        *transport.Client
	apiBase      string
	probeTimeout time.Duration
}

// Option configures a Validator.
type Option func(*Validator)

// WithGitHubClient sets the client used for repository checks.
func WithGitHubClient(c *transport.Client) Option {
	return func(v *Validator) {
		v.github = c
	}
}

// WithProbeClient sets the client used for generic probes.
func WithProbeClient(c *transport.Client) Option {
	return func(v *Validator) {
		v.probe = c
	}
}

// WithAPIBase overrides the GitHub API base URL.
func WithAPIBase(base string) Option {
	return func(v *Validator) {
		v.apiBase = strings.TrimSuffix(base, "/")
	}
}

// WithProbeTimeout overrides the per-request probe deadline.
func WithProbeTimeout(d time.Duration) Option {
	return func(v *Validator) {
		v.probeTimeout = d
	}
}

// New returns a validator memoizing into cache. A nil cache gets a fresh one.
func New(cache *Cache, opts ...Option) *Validator {
	if cache == nil {
		cache = NewCache()
	}
	v := &Validator{
		cache:        cache,
		github:       transport.NewGitHub(""),
		probe:        transport.New(),
		apiBase:      constants.GitHubAPIURL,
		probeTimeout: constants.ProbeTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Cache returns the verdict cache of the run.
func (v *Validator) Cache() *Cache {
	return v.cache
}

// Validate reports whether url is live. Repeated calls for the same
// normalized URL return the first verdict without network traffic.
// Failures of any kind yield false; they are logged, never returned.
func (v *Validator) Validate(ctx context.Context, url string) bool {
	url = strings.TrimSpace(url)
	key := normalize.URL(url)
	if key == "" {
		return false
	}

	return v.cache.Do(key, func() bool {
		if owner, name, ok := normalize.Repo(url); ok {
			return v.checkRepository(ctx, url, owner, name)
		}
		return v.checkLink(ctx, url)
	})
}

// ValidateAll validates every URL concurrently and returns the verdicts in
// input order.
func (v *Validator) ValidateAll(ctx context.Context, urls []string) []catalogs.Verdict {
	verdicts := make([]catalogs.Verdict, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			verdicts[i] = catalogs.Verdict{URL: u, Live: v.Validate(ctx, u)}
			return nil
		})
	}
	_ = g.Wait()

	return verdicts
}

type repository struct {
	Fork bool `json:"fork"`
}

func (v *Validator) checkRepository(ctx context.Context, url, owner, name string) bool {
	ctx = logging.WithURL(ctx, url)
	logger := logging.FromContext(ctx).With().
		Str("strategy", StrategyRepository).
		Logger()

	endpoint := fmt.Sprintf("%s/repos/%s/%s", v.apiBase, owner, name)
	resp, err := v.github.Get(ctx, endpoint)
	if err != nil {
		logger.Debug().Err(err).Msg("repository check failed")
		return false
	}

	var repo repository
	err = transport.DecodeResponse(resp, "github", &repo)

	var apiErr *errors.APIError
	switch {
	case err == nil:
		logger.Debug().Bool("fork", repo.Fork).Bool("live", !repo.Fork).Msg("repository checked")
		return !repo.Fork
	case stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden:
		event := logger.Warn().Int("status", apiErr.StatusCode)
		if !v.github.Authenticated() {
			event = event.Str("hint", "set GITHUB_TOKEN to raise the API quota")
		}
		event.Msg("repository API refused the check, assuming live")
		return true
	case errors.IsRateLimited(err):
		logger.Warn().Err(err).Bool("live", false).Msg("repository API rate limited")
	case errors.IsNotFound(err):
		logger.Debug().Bool("live", false).Msg("repository not found")
	case errors.IsServiceUnavailable(err):
		logger.Debug().Err(err).Bool("live", false).Msg("repository API unavailable")
	default:
		logger.Debug().Err(err).Bool("live", false).Msg("repository checked")
	}
	return false
}

func (v *Validator) checkLink(ctx context.Context, url string) bool {
	ctx = logging.WithURL(ctx, url)
	logger := logging.FromContext(ctx).With().
		Str("strategy", StrategyProbe).
		Logger()

	status, err := v.send(ctx, http.MethodHead, url)
	if err != nil {
		logger.Debug().Err(err).Msg("probe failed")
		return false
	}

	if status == http.StatusMethodNotAllowed || status == http.StatusForbidden {
		status, err = v.send(ctx, http.MethodGet, url)
		if err != nil {
			logger.Debug().Err(err).Msg("GET fallback failed")
			return false
		}
	}

	live := status >= 200 && status < 300
	logger.Debug().Int("status", status).Bool("live", live).Msg("link probed")
	return live
}

// send issues one request under its own probe deadline.
func (v *Validator) send(ctx context.Context, method, url string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, v.probeTimeout)
	defer cancel()

	var (
		resp *http.Response
		err  error
	)
	if method == http.MethodHead {
		resp, err = v.probe.Head(ctx, url)
	} else {
		resp, err = v.probe.Get(ctx, url)
	}
	if err != nil {
		return 0, err
	}
	drain(resp)
	return resp.StatusCode, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
