// Package logging builds the process-wide slog logger.
// Production emits JSON on stdout; development uses tint's colored handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger for the given environment and level name.
func New(isProduction bool, level string) *slog.Logger {
	if isProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}))
	}
	return NewDev(os.Stderr, level)
}

// NewDev returns a colored human-readable logger writing to w.
func NewDev(w io.Writer, level string) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// Setup builds the logger and installs it as slog's default.
func Setup(isProduction bool, level string) *slog.Logger {
	logger := New(isProduction, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
