// Package logger provides the application-wide slog logger and shared
// attribute helpers.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
)

// NewLogger builds the root slog.Logger. Level comes from LOG_LEVEL
// (debug/info/warn/error, case-insensitive, default info). In production
// (GO_ENV=production) output is JSON, otherwise human-readable text.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("GO_ENV"), "production") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

// Scope returns the standard attribute identifying a logging subsystem,
// e.g. log.With(logger.Scope("tree.svc")).
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error returns the standard attribute for attaching an error to a record.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
