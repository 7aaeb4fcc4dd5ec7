package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/oomph-ac/strafe/settings"
)

// newLogger builds the process logger from the logging settings and installs it as the default.
func newLogger(conf settings.Logging, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(conf.Level)}
	var handler slog.Handler
	switch strings.ToLower(conf.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	lg := slog.New(handler)
	slog.SetDefault(lg)
	return lg
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
