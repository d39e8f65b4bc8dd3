// Package application provides the application interface for starlist commands.
//
// Commands accept this interface rather than the concrete App type, so the
// pipeline collaborators can be replaced in tests:
//
//	mock := &application.Mock{
//	    SourcesFunc: func(ids []string) ([]sources.Source, error) {
//	        return []sources.Source{fake}, nil
//	    },
//	}
//	cmd := update.NewCommand(mock)
package application

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/reconciler"
	"github.com/agentstation/starlist/pkg/sources"
)

// Settings are the configured defaults commands fall back to when a flag is
// not given.
type Settings struct {
	CatalogPath string
	TargetPath  string
	Sources     []string
	DryRun      bool
}

// Validator checks links one at a time or in batches.
type Validator interface {
	Validate(ctx context.Context, url string) bool
	reconciler.Validator
}

// Application provides what commands need from the application.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// Stdout is where command results are written.
	Stdout() io.Writer

	// OutputFormat returns the output format requested by the user.
	OutputFormat() string

	// Settings returns configured command defaults.
	Settings() Settings

	// Baseline loads the existing catalog at path.
	Baseline(path string) (*catalogs.Catalog, error)

	// Sources builds the named origins.
	Sources(ids []string) ([]sources.Source, error)

	// Reconciler builds the reconciliation pipeline.
	Reconciler() (reconciler.Reconciler, error)

	// Validator returns a link validator with a fresh cache.
	Validator() Validator

	// Classifier returns the categorizer for uncategorized items.
	Classifier() (reconciler.Classifier, error)

	// Version information.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
