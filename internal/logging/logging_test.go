package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewStructuredLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, "extctl", "v1.2.3", "info")
	logger.Info("scanning", "root", "/srv/site")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "extctl", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "/srv/site", rec["root"])
	assert.Equal(t, "scanning", rec["msg"])
}

func TestNewStructuredLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, "extctl", "dev", "warn")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewStructuredLoggerEnvFallback(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, "extctl", "dev", "")
	logger.Warn("hidden")
	assert.Zero(t, buf.Len())
}
