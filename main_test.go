package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		skipped slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, skipped: slog.LevelDebug - 1},
		{level: "info", enabled: slog.LevelInfo, skipped: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, skipped: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, skipped: slog.LevelWarn},
		{level: "verbose", enabled: slog.LevelInfo, skipped: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := initLogger(&config.Config{LogLevel: tt.level})

			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.skipped))
		})
	}
}
