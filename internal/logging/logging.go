// Package logging configures the process-wide slog logger. Log output goes
// to stderr so command output on stdout stays parseable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a default slog logger writing to stderr with the given
// level and format. Invalid values fall back to warn level and text format.
func Init(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New creates a slog.Logger writing to w with the given level and format.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		// Invalid or empty format, default to text
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid or empty levels default to Warn, which keeps routine commands quiet.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning", "":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
