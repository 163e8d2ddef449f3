// Package logger owns structured-log setup so every module logs through the
// same handler. Level and format come from the environment.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger. LOG_FORMAT=json switches to JSON output;
// LOG_LEVEL selects debug/info/warn/error (default info).
func New() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(h)
}
