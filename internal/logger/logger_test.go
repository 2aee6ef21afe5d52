package logger

import (
	"bytes"
	"strings"
	"testing"

	"contact-dedupe/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"trace level", "trace", zerolog.TraceLevel},
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"warning level", "warning", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"fatal level", "fatal", zerolog.FatalLevel},
		{"panic level", "panic", zerolog.PanicLevel},
		{"uppercase INFO", "INFO", zerolog.InfoLevel},
		{"unknown defaults to info", "unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLogLevel(tt.level)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	t.Run("production mode writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(config.LoggerConfig{Level: "info", Environment: "production"}, &buf)

		Info().Str("run_id", "abc").Msg("scan finished")

		output := buf.String()
		assert.True(t, strings.HasPrefix(output, "{"), "expected JSON output, got %q", output)
		assert.Contains(t, output, `"run_id":"abc"`)
	})

	t.Run("development mode uses console writer", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(config.LoggerConfig{Level: "debug", Environment: "development"}, &buf)

		Debug().Msg("parsed contact")

		output := buf.String()
		assert.False(t, strings.HasPrefix(output, "{"))
		assert.Contains(t, output, "parsed contact")
	})
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log = zerolog.New(&buf).Level(zerolog.WarnLevel)

	Debug().Msg("debug message")
	Info().Msg("info message")
	Warn().Msg("warn message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log = zerolog.New(&buf).With().Timestamp().Logger()

	childLogger := WithFields(map[string]interface{}{
		"component": "engine",
	})
	childLogger.Info().Msg("child logger message")

	output := buf.String()
	assert.Contains(t, output, "engine")
	assert.Contains(t, output, "child logger message")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	log = zerolog.New(&buf).With().Timestamp().Logger()

	childLogger := With().Str("source", "xlsx").Logger()
	childLogger.Warn().Msg("skipping row")

	output := buf.String()
	assert.Contains(t, output, "xlsx")
	assert.Contains(t, output, "skipping row")
}
