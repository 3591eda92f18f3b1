// Package logger wraps log/slog for the cleaning pipeline and CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a leveled structured logger writing slog text records.
type Logger struct {
	internal *slog.Logger
}

// NewLogger creates a logger on stderr with the given level name.
func NewLogger(level string) *Logger {
	return New(os.Stderr, level)
}

// New creates a logger writing to w. Unknown level names fall back to info.
func New(w io.Writer, level string) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})

	return &Logger{internal: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "error")
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With returns a child logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{internal: l.internal.With(args...)}
}
