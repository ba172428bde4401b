// Package logging configures colored structured logging for the planner
// server with tint on top of log/slog.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the process-wide default logger. The level comes from the
// LOG_LEVEL environment variable (debug, info, warn, error; default info).
func Setup() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      ParseLevel(os.Getenv("LOG_LEVEL")),
			TimeFormat: time.Kitchen,
		}),
	))
}

// ParseLevel maps a level name to its slog level. Unrecognized names,
// including the empty string, fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
