// Package local implements the local origin: a YAML file in catalog format
// holding hand-curated additions. Sections give the category.
package local

import (
	"context"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/sources"
)

// Source loads candidates from a catalog file.
type Source struct {
	catalogPath string
}

// New creates a new local source.
func New(opts ...Option) *Source {
	s := &Source{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a local source.
type Option func(*Source)

// WithCatalogPath sets the catalog path.
func WithCatalogPath(path string) Option {
	return func(s *Source) {
		s.catalogPath = path
	}
}

// ID returns the ID of this source.
func (s *Source) ID() sources.ID {
	return sources.LocalID
}

// Fetch returns every entry of the file as a categorized candidate.
func (s *Source) Fetch(ctx context.Context) ([]sources.Candidate, error) {
	if s.catalogPath == "" {
		return nil, errors.NewConfigError("local", "catalog path is required", nil)
	}

	cat, err := catalogs.Load(s.catalogPath)
	if err != nil {
		return nil, errors.WrapResource("load", "catalog", s.catalogPath, err)
	}

	entries := cat.All()
	out := make([]sources.Candidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, sources.Candidate{
			Item:     e.Item,
			Category: e.Category,
			Source:   s.ID(),
		})
	}

	logging.FromContext(ctx).Debug().
		Str("path", s.catalogPath).
		Int("entries", len(out)).
		Msg("local catalog loaded")
	return out, nil
}
