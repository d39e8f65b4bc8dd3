package application

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/classifier"
	"github.com/agentstation/starlist/pkg/reconciler"
	"github.com/agentstation/starlist/pkg/sources"
)

// Mock is a mock implementation of the Application interface for testing.
// Each method can be customized by setting the corresponding function field.
// Unset fields fall back to harmless defaults.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	StdoutFunc       func() io.Writer
	OutputFormatFunc func() string
	SettingsFunc     func() Settings
	BaselineFunc     func(path string) (*catalogs.Catalog, error)
	SourcesFunc      func(ids []string) ([]sources.Source, error)
	ReconcilerFunc   func() (reconciler.Reconciler, error)
	ValidatorFunc    func() Validator
	ClassifierFunc   func() (reconciler.Classifier, error)
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Logger implements Application.Logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// Stdout implements Application.Stdout.
func (m *Mock) Stdout() io.Writer {
	if m.StdoutFunc != nil {
		return m.StdoutFunc()
	}
	return io.Discard
}

// OutputFormat implements Application.OutputFormat.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Settings implements Application.Settings.
func (m *Mock) Settings() Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return Settings{}
}

// Baseline implements Application.Baseline.
func (m *Mock) Baseline(path string) (*catalogs.Catalog, error) {
	if m.BaselineFunc != nil {
		return m.BaselineFunc(path)
	}
	return catalogs.New(), nil
}

// Sources implements Application.Sources.
func (m *Mock) Sources(ids []string) ([]sources.Source, error) {
	if m.SourcesFunc != nil {
		return m.SourcesFunc(ids)
	}
	return nil, nil
}

// Reconciler implements Application.Reconciler.
func (m *Mock) Reconciler() (reconciler.Reconciler, error) {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc()
	}
	c, err := m.Classifier()
	if err != nil {
		return nil, err
	}
	return reconciler.New(
		reconciler.WithValidators(func() reconciler.Validator { return m.Validator() }),
		reconciler.WithClassifier(c),
	)
}

// Validator implements Application.Validator.
func (m *Mock) Validator() Validator {
	if m.ValidatorFunc != nil {
		return m.ValidatorFunc()
	}
	return LiveValidator{}
}

// Classifier implements Application.Classifier.
func (m *Mock) Classifier() (reconciler.Classifier, error) {
	if m.ClassifierFunc != nil {
		return m.ClassifierFunc()
	}
	return classifier.New(nil, classifier.Options{}), nil
}

// Version implements Application.Version.
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit implements Application.Commit.
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date implements Application.Date.
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy implements Application.BuiltBy.
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// LiveValidator reports every link live without touching the network.
type LiveValidator struct{}

// Validate implements Validator.
func (LiveValidator) Validate(context.Context, string) bool { return true }

// ValidateAll implements Validator.
func (LiveValidator) ValidateAll(_ context.Context, urls []string) []catalogs.Verdict {
	out := make([]catalogs.Verdict, len(urls))
	for i, u := range urls {
		out[i] = catalogs.Verdict{URL: u, Live: true}
	}
	return out
}

var _ Application = (*Mock)(nil)
