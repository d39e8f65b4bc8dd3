// Package sources defines the origins that hand candidate items to the
// reconciliation pipeline.
//
// An origin knows how to reach one kind of upstream (a package registry
// search, a showcase listing, a feed, an HTML link page, a local YAML file)
// and turns what it finds into Candidates. Origins never deduplicate or
// validate; that is the pipeline's job.
//
// Example usage:
//
//	srcs := sources.NewSources()
//	srcs.Add(registry.New(registry.WithQuery("keywords:starlight-plugin")))
//	srcs.Add(feed.New(feed.WithURLs(urls...)))
//
//	for _, src := range srcs.List() {
//	    candidates, err := src.Fetch(ctx)
//	    ...
//	}
package sources

import (
	"context"
	"io"
	"sync"

	"github.com/agentstation/starlist/pkg/catalogs"
)

// ID represents the identifier of an origin.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Common source IDs.
const (
	RegistryID ID = "registry"
	ShowcaseID ID = "showcase"
	FeedID     ID = "feed"
	PageID     ID = "page"
	LocalID    ID = "local"
)

// Candidate is an item proposed by an origin. Category is empty when the
// origin cannot tell, in which case the classifier decides.
type Candidate struct {
	Item     catalogs.Item
	Category catalogs.Category
	Source   ID
}

// Categorized reports whether the origin already assigned a category.
func (c Candidate) Categorized() bool {
	return c.Category != ""
}

// Source is an origin of candidates.
type Source interface {
	// ID identifies the origin in logs and results.
	ID() ID

	// Fetch retrieves the candidates currently offered by the origin.
	Fetch(ctx context.Context) ([]Candidate, error)
}

// Parser turns one upstream document into items. Fragments that cannot be
// understood are dropped; only an unreadable document is an error.
type Parser interface {
	Parse(r io.Reader) ([]catalogs.Item, error)
}

// Sources is a thread-safe, ordered container of origins. Order matters:
// when two origins offer the same add-on, the earlier one wins.
type Sources struct {
	mu      sync.RWMutex
	order   []ID
	sources map[ID]Source
}

// NewSources creates a new Sources instance.
func NewSources(srcs ...Source) *Sources {
	s := &Sources{sources: make(map[ID]Source)}
	for _, src := range srcs {
		s.Add(src)
	}
	return s
}

// Add appends src, replacing an origin with the same ID in place.
func (s *Sources) Add(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := src.ID()
	if _, found := s.sources[id]; !found {
		s.order = append(s.order, id)
	}
	s.sources[id] = src
}

// Get returns a source by ID.
func (s *Sources) Get(id ID) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, found := s.sources[id]
	return src, found
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// List returns the sources in insertion order.
func (s *Sources) List() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sources[id])
	}
	return out
}

// IDs returns the source IDs in insertion order.
func (s *Sources) IDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]ID, len(s.order))
	copy(ids, s.order)
	return ids
}
