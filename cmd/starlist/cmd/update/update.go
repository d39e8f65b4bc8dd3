package update

import (
	"context"
	"fmt"

	"github.com/agentstation/starlist/internal/cmd/application"
	"github.com/agentstation/starlist/internal/render"
	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/reconciler"
)

// Execute runs one reconciliation and writes its outcome.
// The catalog file is saved only after the target document was updated.
func Execute(ctx context.Context, app application.Application, flags *Flags) error {
	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)
	ctx = logging.WithOperation(ctx, "update")

	ctx, cancel := context.WithTimeout(ctx, constants.RunTimeout)
	defer cancel()

	// A target without markers fails before any origin is contacted
	if flags.Target != "" {
		if err := render.CheckFile(flags.Target); err != nil {
			return err
		}
	}

	baseline, err := app.Baseline(flags.Catalog)
	if err != nil {
		return err
	}

	srcs, err := app.Sources(flags.Sources)
	if err != nil {
		return err
	}

	rec, err := app.Reconciler()
	if err != nil {
		return err
	}

	result, err := rec.Run(ctx, baseline, srcs)
	if err != nil {
		return err
	}
	logResult(app, result)

	body, err := render.String(result.Catalog)
	if err != nil {
		return err
	}

	out := app.Stdout()
	switch {
	case flags.Target != "":
		if err := render.InjectFile(flags.Target, body, flags.DryRun, out); err != nil {
			return err
		}
	case flags.DryRun:
		if _, err := fmt.Fprint(out, body); err != nil {
			return err
		}
	}

	if flags.DryRun {
		logger.Info().Msg("dry run, nothing written")
		return nil
	}

	if flags.Catalog != "" && result.HasChanges() {
		if err := result.Catalog.Save(flags.Catalog); err != nil {
			return err
		}
		logger.Info().Str("path", flags.Catalog).Int("entries", result.Catalog.Len()).Msg("catalog saved")
	}

	return nil
}

func logResult(app application.Application, result *reconciler.Result) {
	logger := app.Logger()
	for _, err := range result.Errors {
		logger.Warn().Err(err).Msg("origin failed")
	}

	stats := result.Metadata.Stats
	fetched := 0
	for _, n := range stats.Fetched {
		fetched += n
	}
	logger.Info().
		Int("fetched", fetched).
		Int("known", stats.Known).
		Int("rejected", stats.Rejected).
		Int("classified", stats.Classified).
		Int("duplicates", stats.Duplicates).
		Dur("duration", result.Metadata.Duration).
		Msg(result.Summary())
}
