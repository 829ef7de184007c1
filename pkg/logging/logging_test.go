package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	t.Run("defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DEBUG", "1")
		t.Setenv("LOG_FORMAT", "json")
		cfg := logging.FromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("json file output with fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signlib.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "auto",
			Output: path,
			Fields: map[string]any{"component": "storage", "attempt": 2},
		})
		logger.Debug().Msg("saved catalog")

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(content), &entry))
		assert.Equal(t, "saved catalog", entry["message"])
		assert.Equal(t, "storage", entry["component"])
		assert.Equal(t, float64(2), entry["attempt"])
	})

	t.Run("level filters output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "warn", Format: "json", Output: path})
		logger.Info().Msg("hidden")
		logger.Warn().Msg("shown")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "hidden")
		assert.Contains(t, string(content), "shown")
	})
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	ctx = logging.WithVideo(ctx, "v_1700000000000")
	ctx = logging.WithOperation(ctx, "add_single")
	ctx = logging.WithFolder(ctx, "signs")
	ctx = logging.WithBackend(ctx, "sqlite")

	logging.FromContext(ctx).Info().Msg("video added")

	testLogger.AssertContains(t, "video added")
	assert.True(t, testLogger.ContainsAll(`"video_id":"v_1700000000000"`, `"operation":"add_single"`,
		`"folder":"signs"`, `"backend":"sqlite"`))
	assert.Equal(t, 1, testLogger.Count())
}

func TestRequestID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRequestID(ctx, "req-42")

	assert.Equal(t, "req-42", logging.RequestID(ctx))
	logging.FromContext(ctx).Info().Msg("handled")
	testLogger.AssertContains(t, `"request_id":"req-42"`)
	assert.Empty(t, logging.RequestID(context.Background()))
}

func TestWithFieldsAndError(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithFields(ctx, map[string]any{"files": 3, "category": "Greetings", "prepend": true})
	ctx = logging.WithError(ctx, assert.AnError)
	assert.Equal(t, ctx, logging.WithError(ctx, nil))

	logging.FromContext(ctx).Warn().Msg("bulk import")

	line := testLogger.Lines()[0]
	assert.True(t, strings.Contains(line, `"files":3`))
	assert.True(t, strings.Contains(line, `"category":"Greetings"`))
	assert.True(t, strings.Contains(line, `"error"`))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	logging.Info().Str("video_id", "d1").Msg("seeded")

	captured.AssertContains(t, "seeded")
	captured.AssertNotContains(t, "unrelated")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestEntries(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithVideo(logging.WithLogger(context.Background(), tl.Logger), "d1")
	logging.FromContext(ctx).Info().Msg("played")

	entries := tl.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "d1", entries[0]["video_id"])
	assert.Equal(t, "info", entries[0]["level"])
}
