package logger_test

import (
	"log/slog"
	"testing"

	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "WARNING", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"empty defaults to info", "", slog.LevelInfo},
		{"garbage defaults to info", "loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, logger.ParseLevel(tt.level))
		})
	}
}

func TestNew(t *testing.T) {
	lg := logger.New(&config.LogConfig{Format: "json", Level: "debug"})
	require.NotNil(t, lg)
	assert.True(t, lg.Enabled(t.Context(), slog.LevelDebug))

	lg = logger.New(&config.LogConfig{Format: "text", Level: "error"})
	require.NotNil(t, lg)
	assert.False(t, lg.Enabled(t.Context(), slog.LevelInfo))
}
