package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/pkg/logging"
)

func TestContextFields(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithSource(ctx, "npm")
	ctx = logging.WithOperation(ctx, "validate")
	ctx = logging.WithURL(ctx, "https://github.com/x/starlight-theme-nova")

	logging.FromContext(ctx).Info().Msg("verdict")

	testLogger.AssertContains(t, `"source":"npm"`)
	testLogger.AssertContains(t, `"operation":"validate"`)
	testLogger.AssertContains(t, "starlight-theme-nova")
	assert.Len(t, testLogger.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	logging.Warn().Str("source", "showcase").Msg("source failed")
	captured.AssertContains(t, "source failed")
	captured.AssertContains(t, `"level":"warn"`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		level   string
		logInfo bool
	}{
		{"debug", true},
		{"info", true},
		{"warning", false},
		{"error", false},
		{"bogus", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: path,
			})
			logger.Info().Msg("hello")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.logInfo, strings.Contains(string(data), "hello"))
		})
	}
}

func TestNewWritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)
	logger.Error().Str("category", "theme").Msg("merge")
	assert.Contains(t, buf.String(), `"category":"theme"`)
}
