package moodsplit

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with prescription-specific context.
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

// LogDownstream logs the downstream distance sample used as the scoring
// target.
func (l *Logger) LogDownstream(ctx context.Context, samples int, precomputed bool) {
	l.DebugContext(ctx, "downstream distances ready",
		"samples", samples,
		"precomputed", precomputed,
	)
}

// LogCandidate logs the merged characterization of one candidate splitter.
func (l *Logger) LogCandidate(ctx context.Context, label string, score float64, trials int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "candidate characterization failed",
			"candidate", label,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "candidate characterized",
			"candidate", label,
			"representativeness", score,
			"trials", trials,
		)
	}
}

// LogPrescription logs the winning strategy after a successful fit.
func (l *Logger) LogPrescription(ctx context.Context, label string, score float64) {
	l.InfoContext(ctx, "prescribed the most representative splitting method",
		"candidate", label,
		"representativeness", score,
	)
}
