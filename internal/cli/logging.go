package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/roboco-io/img2md/internal/config"
)

// newLogger builds the diagnostic logger. --verbose forces debug and
// --quiet forces error, otherwise the configured level applies.
func newLogger(w io.Writer, lc config.LogConfig, verbose, quiet bool) *slog.Logger {
	level := parseLevel(lc.Level)
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
