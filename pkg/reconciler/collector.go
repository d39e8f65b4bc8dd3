package reconciler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/sources"
)

// collection is the outcome of fetching every origin.
type collection struct {
	candidates []sources.Candidate // origin order, then upstream order
	fetched    map[sources.ID]int
	errors     []error
}

// collect fetches every origin concurrently. A failing origin is logged and
// contributes nothing; it never fails the run.
func collect(ctx context.Context, srcs []sources.Source) *collection {
	batches := make([][]sources.Candidate, len(srcs))
	errs := make([]error, len(srcs))

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			ctx := logging.WithSource(ctx, src.ID().String())
			candidates, err := src.Fetch(ctx)
			if err != nil {
				logging.FromContext(ctx).Error().Err(err).Msg("source failed, continuing without it")
				errs[i] = errors.NewSourceError(src.ID().String(), err)
				return nil
			}
			logging.FromContext(ctx).Info().Int("candidates", len(candidates)).Msg("source fetched")
			batches[i] = candidates
			return nil
		})
	}
	_ = g.Wait()

	c := &collection{fetched: make(map[sources.ID]int, len(srcs))}
	for i, src := range srcs {
		if errs[i] != nil {
			c.errors = append(c.errors, errs[i])
			continue
		}
		for _, cand := range batches[i] {
			if cand.Source == "" {
				cand.Source = src.ID()
			}
			c.candidates = append(c.candidates, cand)
		}
		c.fetched[src.ID()] = len(batches[i])
	}
	return c
}
