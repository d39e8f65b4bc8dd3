// Package classifier assigns a category to candidates that arrive without
// one. A categorization service is asked once per run for the whole batch;
// when it is unavailable or answers with something unusable, a keyword
// heuristic decides instead. Every item always gets a category.
package classifier

import (
	"context"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
)

// Service answers a categorization prompt with free text.
type Service interface {
	Categorize(ctx context.Context, system, prompt string) (string, error)
}

// Options configures a Classifier.
type Options struct {
	// Strict turns a missing service into an error instead of a silent
	// fallback to the heuristic.
	Strict bool
}

// Classifier categorizes uncategorized items.
type Classifier struct {
	service Service
	opts    Options
}

// New returns a classifier. A nil service means every item is
// categorized by the heuristic.
func New(service Service, opts Options) *Classifier {
	return &Classifier{service: service, opts: opts}
}

// Classify returns one category per item, aligned by index. The only error
// is a missing service in strict mode; service failures fall back to the
// heuristic and are logged.
func (c *Classifier) Classify(ctx context.Context, items []catalogs.Item) ([]catalogs.Category, error) {
	if len(items) == 0 {
		return []catalogs.Category{}, nil
	}

	logger := logging.FromContext(ctx).With().
		Str("operation", "classify").
		Int("items", len(items)).
		Logger()

	if c.service == nil {
		if c.opts.Strict {
			return nil, &errors.ConfigError{
				Component: "classifier",
				Message:   "categorization service credential is required",
				Err:       errors.ErrAPIKeyRequired,
			}
		}
		logger.Warn().Msg("no categorization service configured, using keyword heuristic")
		return Fallback(items), nil
	}

	reply, err := c.service.Categorize(ctx, SystemInstruction, Prompt(items))
	if err != nil {
		logger.Warn().Err(err).
			Bool("timeout", errors.IsTimeout(err)).
			Msg("categorization service failed, using keyword heuristic")
		return Fallback(items), nil
	}

	labels, ok := ParseReply(reply, len(items))
	if !ok {
		logger.Warn().Str("reply", truncate(reply, 120)).Msg("unparsable categorization reply, using keyword heuristic")
		return Fallback(items), nil
	}

	logger.Debug().Msg("items categorized by service")
	return labels, nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
