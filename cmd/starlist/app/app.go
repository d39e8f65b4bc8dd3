// Package app provides the application context and dependency management
// for the starlist CLI. It centralizes configuration, logging and the
// construction of the reconciliation pipeline and its collaborators.
package app

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/starlist/internal/categorizer"
	"github.com/agentstation/starlist/internal/cmd/application"
	"github.com/agentstation/starlist/internal/sources/feed"
	"github.com/agentstation/starlist/internal/sources/local"
	"github.com/agentstation/starlist/internal/sources/page"
	"github.com/agentstation/starlist/internal/sources/registry"
	"github.com/agentstation/starlist/internal/sources/showcase"
	"github.com/agentstation/starlist/internal/transport"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/classifier"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/reconciler"
	"github.com/agentstation/starlist/pkg/sources"
	"github.com/agentstation/starlist/pkg/validator"
)

// App represents the starlist application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Output streams, replaceable in tests
	stdout io.Writer
	stderr io.Writer

	// Categorization service (lazy-initialized, singleton)
	mu      sync.Mutex
	service classifier.Service
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// GitHub returns a hosting API client authenticated with the configured token.
func (a *App) GitHub() *transport.Client {
	return transport.NewGitHub(a.config.GitHubToken)
}

// Sources builds the origins named by ids, in that order. Origins without
// anything configured to read (no feeds, no pages, no additions file) are
// skipped.
func (a *App) Sources(ids []string) ([]sources.Source, error) {
	set := sources.NewSources()
	for _, raw := range ids {
		id := sources.ID(strings.ToLower(strings.TrimSpace(raw)))
		switch id {
		case sources.RegistryID:
			set.Add(registry.New(
				registry.WithBaseURL(a.config.RegistryURL),
				registry.WithQuery(a.config.RegistryQuery),
			))
		case sources.ShowcaseID:
			set.Add(showcase.New(
				showcase.WithClient(a.GitHub()),
				showcase.WithAPIBase(a.config.GitHubAPIURL),
				showcase.WithRepository(a.config.ShowcaseRepo, a.config.ShowcaseDir),
				showcase.WithTag(a.config.ShowcaseTag),
			))
		case sources.FeedID:
			if len(a.config.Feeds) == 0 {
				continue
			}
			set.Add(feed.New(
				feed.WithURLs(a.config.Feeds...),
				feed.WithFilter(a.config.FeedFilter),
			))
		case sources.PageID:
			if len(a.config.Pages) == 0 {
				continue
			}
			set.Add(page.New(page.WithURLs(a.config.Pages...)))
		case sources.LocalID:
			if a.config.AdditionsPath == "" {
				continue
			}
			set.Add(local.New(local.WithCatalogPath(a.config.AdditionsPath)))
		default:
			return nil, errors.NewValidationError("sources", raw, "unknown source")
		}
	}
	return set.List(), nil
}

// Service returns the categorization service, or nil when no credential is
// configured. The client is created once.
func (a *App) Service() (classifier.Service, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.service != nil {
		return a.service, nil
	}

	client, err := categorizer.New(a.config.GeminiAPIKey, categorizer.WithModel(a.config.GeminiModel))
	if err != nil {
		if errors.IsAPIKeyError(err) {
			a.logger.Debug().Msg("no categorization credential, heuristic classification only")
			return nil, nil
		}
		return nil, err
	}
	a.service = client
	return client, nil
}

// Classifier returns a classifier over the configured service.
func (a *App) Classifier() (reconciler.Classifier, error) {
	service, err := a.Service()
	if err != nil {
		return nil, err
	}
	return classifier.New(service, classifier.Options{Strict: a.config.StrictClassification}), nil
}

// Validators returns a factory building a fresh validator, with its own
// cache, for every run.
func (a *App) Validators() reconciler.ValidatorFactory {
	return func() reconciler.Validator {
		return a.newValidator()
	}
}

// Validator returns a validator with a new cache.
func (a *App) Validator() application.Validator {
	return a.newValidator()
}

func (a *App) newValidator() *validator.Validator {
	return validator.New(validator.NewCache(),
		validator.WithGitHubClient(a.GitHub()),
		validator.WithAPIBase(a.config.GitHubAPIURL),
	)
}

// Reconciler builds the reconciliation pipeline.
func (a *App) Reconciler() (reconciler.Reconciler, error) {
	c, err := a.Classifier()
	if err != nil {
		return nil, err
	}
	return reconciler.New(
		reconciler.WithValidators(a.Validators()),
		reconciler.WithClassifier(c),
	)
}

// Stdout returns the stream command results are written to.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings returns configured command defaults.
func (a *App) Settings() application.Settings {
	return application.Settings{
		CatalogPath: a.config.CatalogPath,
		TargetPath:  a.config.TargetPath,
		Sources:     a.config.Sources,
		DryRun:      a.config.DryRun,
	}
}

// Baseline loads the existing catalog. A missing file is an empty catalog.
func (a *App) Baseline(path string) (*catalogs.Catalog, error) {
	if path == "" {
		return catalogs.New(), nil
	}
	cat, err := catalogs.Load(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			a.logger.Info().Str("path", path).Msg("no existing catalog, starting empty")
			return catalogs.New(), nil
		}
		return nil, err
	}
	return cat, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	a.logger.Debug().Msg("shutdown complete")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// WithOutput sets the streams commands write to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) error {
		a.stdout = stdout
		a.stderr = stderr
		return nil
	}
}

// WithService sets the categorization service (useful for testing).
func WithService(service classifier.Service) Option {
	return func(a *App) error {
		a.service = service
		return nil
	}
}
