// Package reconciler turns candidates from many origins into one catalog.
//
// A run fetches every origin, drops candidates the catalog already holds,
// validates the remaining links, asks the classifier about uncategorized
// candidates, merges the survivors with matcher-based deduplication and
// sorts the result. Item-level problems (dead links, an unavailable
// classifier) never fail a run; a failing origin is recorded in the result
// and the run continues without it.
package reconciler

import (
	"context"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/sources"
)

// Reconciler is the main interface for reconciling origins into a catalog.
type Reconciler interface {
	// Run merges the candidates of srcs into a copy of baseline.
	Run(ctx context.Context, baseline *catalogs.Catalog, srcs []sources.Source) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	validators ValidatorFactory
	classifier Classifier
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		validators: options.validators,
		classifier: options.classifier,
	}, nil
}

// Run performs reconciliation step by step.
func (r *reconciler) Run(ctx context.Context, baseline *catalogs.Catalog, srcs []sources.Source) (*Result, error) {
	start := time.Now()
	result := NewResult()
	result.Metadata.RunID = uuid.NewString()
	ctx = logging.WithRunID(ctx, result.Metadata.RunID)
	logger := logging.FromContext(ctx)

	if baseline == nil {
		baseline = catalogs.New()
	}
	cat := baseline.Clone()

	for _, src := range srcs {
		result.Metadata.Sources = append(result.Metadata.Sources, src.ID())
	}

	// Step 1: Fetch every origin
	collected := collect(ctx, srcs)
	result.Errors = append(result.Errors, collected.errors...)
	result.Metadata.Stats.Fetched = collected.fetched

	// Step 2: Drop what the catalog already has
	candidates, known := newFilter(baseline).apply(collected.candidates)
	result.Metadata.Stats.Known = known
	logger.Info().
		Int("candidates", len(collected.candidates)).
		Int("new", len(candidates)).
		Msg("Filtered known candidates")

	// Step 3: Validate links
	live := r.validate(ctx, candidates)
	result.Metadata.Stats.Rejected = len(candidates) - len(live)

	// Step 4: Classify the uncategorized
	classified, err := r.classify(ctx, live)
	if err != nil {
		return nil, err
	}
	result.Metadata.Stats.Classified = classified

	// Step 5: Merge and sort
	for _, category := range catalogs.Categories() {
		var items []catalogs.Item
		for _, c := range live {
			if c.Category == category {
				items = append(items, c.Item)
			}
		}
		if len(items) == 0 {
			continue
		}

		added, err := Merge(ctx, cat, items, category)
		if err != nil {
			return nil, err
		}
		result.Added[category] = added
		result.Metadata.Stats.Duplicates += len(items) - added
	}
	Sort(cat)

	result.Catalog = cat
	result.Metadata.EndTime = utc.Now()
	result.Metadata.Duration = time.Since(start)

	logger.Info().
		Int("added", result.TotalAdded()).
		Int("rejected", result.Metadata.Stats.Rejected).
		Int("duplicates", result.Metadata.Stats.Duplicates).
		Int("failed_sources", len(result.Errors)).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation completed")

	return result, nil
}

// validate returns the candidates whose link is live, in input order.
func (r *reconciler) validate(ctx context.Context, candidates []sources.Candidate) []sources.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	urls := make([]string, len(candidates))
	for i, c := range candidates {
		urls[i] = c.Item.URL
	}
	verdicts := r.validators().ValidateAll(logging.WithOperation(ctx, "validate"), urls)

	live := make([]sources.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if verdicts[i].Live {
			live = append(live, c)
			continue
		}
		logging.FromContext(ctx).Debug().
			Str("source", c.Source.String()).
			Str("url", c.Item.URL).
			Msg("dropping candidate with dead link")
	}
	return live
}

// classify assigns a category to every uncategorized candidate in place,
// with a single classifier call. It returns how many were classified.
func (r *reconciler) classify(ctx context.Context, candidates []sources.Candidate) (int, error) {
	var (
		pending []int
		items   []catalogs.Item
	)
	for i, c := range candidates {
		if !c.Categorized() {
			pending = append(pending, i)
			items = append(items, c.Item)
		}
	}

	labels, err := r.classifier.Classify(ctx, items)
	if err != nil {
		return 0, err
	}
	for j, i := range pending {
		if j < len(labels) && labels[j].IsValid() {
			candidates[i].Category = labels[j]
		} else {
			candidates[i].Category = catalogs.CategoryPlugin
		}
	}
	return len(pending), nil
}
