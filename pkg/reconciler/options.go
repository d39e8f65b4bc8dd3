package reconciler

import (
	"context"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/classifier"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/validator"
)

// Validator checks a batch of links.
type Validator interface {
	ValidateAll(ctx context.Context, urls []string) []catalogs.Verdict
}

// Classifier categorizes a batch of items.
type Classifier interface {
	Classify(ctx context.Context, items []catalogs.Item) ([]catalogs.Category, error)
}

// ValidatorFactory builds the validator of one run. Verdicts must not
// outlive the run, so a fresh validator is requested every time.
type ValidatorFactory func() Validator

// options configures a reconciler.
type options struct {
	validators ValidatorFactory
	classifier Classifier
}

func defaultOptions() *options {
	return &options{
		validators: func() Validator { return validator.New(validator.NewCache()) },
		classifier: classifier.New(nil, classifier.Options{}),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithValidators sets how the validator of each run is built.
func WithValidators(factory ValidatorFactory) Option {
	return func(o *options) error {
		if factory == nil {
			return &errors.ValidationError{
				Field:   "validators",
				Message: "cannot be nil",
			}
		}
		o.validators = factory
		return nil
	}
}

// WithClassifier sets the classifier for uncategorized candidates.
func WithClassifier(c Classifier) Option {
	return func(o *options) error {
		if c == nil {
			return &errors.ValidationError{
				Field:   "classifier",
				Message: "cannot be nil",
			}
		}
		o.classifier = c
		return nil
	}
}
