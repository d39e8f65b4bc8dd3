package reconciler

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/sources"
)

// Result represents the outcome of a run.
type Result struct {
	// Catalog is the baseline plus every admitted candidate, sorted.
	Catalog *catalogs.Catalog

	// Added counts admitted entries per category.
	Added map[catalogs.Category]int

	// Issues
	Errors []error

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	// RunID tags every log line of the run
	RunID string

	// StartTime when the run started
	StartTime utc.Time

	// EndTime when the run completed
	EndTime utc.Time

	// Duration of the run
	Duration time.Duration

	// Sources that were fetched, in origin order
	Sources []sources.ID

	// Stats about the run
	Stats ResultStatistics
}

// ResultStatistics contains counters collected during a run.
type ResultStatistics struct {
	// Fetched counts candidates per origin.
	Fetched map[sources.ID]int
	// Known counts candidates dropped before validation: no URL, already in
	// the catalog, or repeated by another origin.
	Known int
	// Rejected counts candidates whose link is not live.
	Rejected int
	// Classified counts candidates categorized by the classifier.
	Classified int
	// Duplicates counts live candidates the merge step matched to an entry.
	Duplicates int
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Added:  make(map[catalogs.Category]int),
		Errors: []error{},
		Metadata: ResultMetadata{
			StartTime: utc.Now(),
			Sources:   []sources.ID{},
			Stats: ResultStatistics{
				Fetched: make(map[sources.ID]int),
			},
		},
	}
}

// IsSuccess returns true if every origin was fetched.
func (r *Result) IsSuccess() bool {
	return len(r.Errors) == 0
}

// TotalAdded returns the number of entries added across categories.
func (r *Result) TotalAdded() int {
	n := 0
	for _, v := range r.Added {
		n += v
	}
	return n
}

// HasChanges returns true if anything was added.
func (r *Result) HasChanges() bool {
	return r.TotalAdded() > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	var parts []string
	for _, c := range catalogs.Categories() {
		if n := r.Added[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, c.Plural()))
		}
	}

	s := "No new entries."
	if len(parts) > 0 {
		s = "Added " + strings.Join(parts, ", ") + "."
	}
	if !r.IsSuccess() {
		s += fmt.Sprintf(" %d source(s) failed.", len(r.Errors))
	}
	return s
}
