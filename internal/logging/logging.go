package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

// RequestIDKey is the context key under which the per-request id is stored.
const RequestIDKey contextKey = "request_id"

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates the application logger. JSON output by default; "text" format
// switches to the console writer for local development.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// WithRequestID returns a child logger carrying the request id from ctx, if
// one was set by the request middleware.
func WithRequestID(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return logger.With().Str("request_id", id).Logger()
	}
	return logger
}
