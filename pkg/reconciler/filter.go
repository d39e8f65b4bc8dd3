package reconciler

import (
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/matcher"
	"github.com/agentstation/starlist/pkg/normalize"
	"github.com/agentstation/starlist/pkg/sources"
)

// filter drops candidates already known before any network check is spent
// on them.
type filter struct {
	baseline []catalogs.Entry
}

func newFilter(baseline *catalogs.Catalog) *filter {
	return &filter{baseline: baseline.All()}
}

// apply keeps candidates that have a URL, are not duplicates of a baseline
// entry in any category, and do not share a normalized URL with an earlier
// candidate. It returns the survivors and how many were dropped.
func (f *filter) apply(candidates []sources.Candidate) (kept []sources.Candidate, dropped int) {
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		key := normalize.URL(c.Item.URL)
		if key == "" || seen[key] || f.known(c.Item) {
			dropped++
			continue
		}
		seen[key] = true
		kept = append(kept, c)
	}
	return kept, dropped
}

func (f *filter) known(item catalogs.Item) bool {
	for _, e := range f.baseline {
		if matcher.IsDuplicate(e.Item, item) {
			return true
		}
	}
	return false
}
