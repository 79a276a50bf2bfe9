package sparseknn

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with sparseknn-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithRows adds a row count field to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// WithEpsilon adds a tie tolerance field to the logger.
func (l *Logger) WithEpsilon(epsilon float32) *Logger {
	return &Logger{
		Logger: l.Logger.With("epsilon", epsilon),
	}
}

// LogExtend logs a graph extension operation.
func (l *Logger) LogExtend(ctx context.Context, rows, entries int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extend failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "extend completed",
			"rows", rows,
			"entries", entries,
			"duration", duration,
		)
	}
}

// LogLowerRank logs a rank reduction operation.
func (l *Logger) LogLowerRank(ctx context.Context, rows, kept, dropped int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lower rank failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "lower rank completed",
			"rows", rows,
			"kept", kept,
			"dropped", dropped,
			"duration", duration,
		)
	}
}
