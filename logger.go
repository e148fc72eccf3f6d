package datrie

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with datrie-specific helpers so that build and
// persistence operations log with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, a default text handler to stderr is used.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs a build operation.
func (l *Logger) LogBuild(numKeys, numUnits int, duration time.Duration, err error) {
	if err != nil {
		l.Error("build failed",
			"keys", numKeys,
			"error", err,
		)
	} else {
		l.Info("build completed",
			"keys", numKeys,
			"units", numUnits,
			"duration", duration,
		)
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(bytes int, duration time.Duration, err error) {
	if err != nil {
		l.Error("save failed",
			"error", err,
		)
	} else {
		l.Info("save completed",
			"bytes", bytes,
			"duration", duration,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(numUnits int, duration time.Duration, err error) {
	if err != nil {
		l.Error("load failed",
			"error", err,
		)
	} else {
		l.Info("load completed",
			"units", numUnits,
			"duration", duration,
		)
	}
}
