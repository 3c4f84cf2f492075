// Package logger builds the slog.Logger used by the collector. The default
// logger discards everything; setting GENGC_LOG turns on a text handler on
// stderr at the named level.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar names the environment variable consulted by FromEnv.
const EnvVar = "GENGC_LOG"

// Discard is a logger that drops all records.
var Discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures New.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Use the JSON handler instead of the text handler
}

// New returns a logger configured by opts.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return Discard
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}

// FromEnv returns a stderr logger when GENGC_LOG is set to a level name
// (debug, info, warn, error), and Discard otherwise.
func FromEnv() *slog.Logger {
	level, ok := ParseLevel(os.Getenv(EnvVar))
	if !ok {
		return Discard
	}
	return New(Options{Enabled: true, Level: level})
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "1", "true":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
