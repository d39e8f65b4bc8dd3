package reconciler

import (
	"context"
	"sync"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/normalize"
	"github.com/agentstation/starlist/pkg/sources"
)

// staticSource returns fixed candidates, or err.
type staticSource struct {
	id         sources.ID
	candidates []sources.Candidate
	err        error
}

func (s *staticSource) ID() sources.ID { return s.id }

func (s *staticSource) Fetch(context.Context) ([]sources.Candidate, error) {
	return s.candidates, s.err
}

// fakeValidator treats every URL as live unless listed in dead.
type fakeValidator struct {
	mu      sync.Mutex
	dead    map[string]bool
	checked []string
}

func (v *fakeValidator) ValidateAll(_ context.Context, urls []string) []catalogs.Verdict {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]catalogs.Verdict, len(urls))
	for i, u := range urls {
		v.checked = append(v.checked, u)
		out[i] = catalogs.Verdict{URL: u, Live: !v.dead[normalize.URL(u)]}
	}
	return out
}

// fakeClassifier answers with a fixed category per title.
type fakeClassifier struct {
	byTitle map[string]catalogs.Category
	calls   int
	err     error
}

func (c *fakeClassifier) Classify(_ context.Context, items []catalogs.Item) ([]catalogs.Category, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := make([]catalogs.Category, len(items))
	for i, item := range items {
		out[i] = c.byTitle[item.Title]
	}
	return out, nil
}

func candidate(title, url string, category catalogs.Category) sources.Candidate {
	return sources.Candidate{Item: catalogs.NewItem(title, url, ""), Category: category}
}

func titles(entries []catalogs.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}
