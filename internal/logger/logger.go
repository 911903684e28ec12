// Package logger provides structured logging for praia. It wraps log/slog so
// the storage engine and CLI share one interface with swappable level,
// format and output.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the interface for structured logging in praia.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error message with optional key-value pairs.
	Error(msg string, args ...any)
	// With returns a new Logger with additional context fields.
	With(args ...any) Logger
}

// slogLogger wraps slog.Logger to implement the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// New creates a Logger with the given options. The default writes text to
// stderr at info level.
func New(opts ...Option) Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stderr,
		format: FormatText,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	return &slogLogger{logger: slog.New(handler)}
}

// Nop returns a logger that discards all messages.
func Nop() Logger {
	return &slogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}
