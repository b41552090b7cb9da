package crnk

import (
	"errors"
	"log/slog"
	"os"
)

// Config contains optional settings shared by query builders.
type Config struct {
	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, the default logger is used as is.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level
}

// Standard errors returned by crnk package.
var (
	// ErrInvalidDirection indicates a sort direction other than ASC or DESC.
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// NewLogger resolves the logger described by cfg.
// A nil cfg yields slog.Default().
func NewLogger(cfg *Config) *slog.Logger {
	if cfg == nil {
		return slog.Default()
	}
	if cfg.Logger != nil {
		return cfg.Logger
	}
	if cfg.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *cfg.LogLevel}))
	}
	return slog.Default()
}
