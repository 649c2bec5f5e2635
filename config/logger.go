package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns the application logger for cfg.
// Production writes JSON; every other environment writes text.
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
}

func newLogger(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps debug, info, warn and error; anything else is info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
