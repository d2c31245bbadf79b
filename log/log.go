// Package log provides structured logging for the crypto-conditions tools.
// Loggers wrap log/slog and carry a "module" attribute so output from the
// vectors runner and the CLI commands can be told apart.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is a slog.Logger scoped to a module.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(slog.LevelInfo))
}

// New returns a JSON logger on stderr.
func New(level slog.Level) *Logger {
	return NewWithWriter(os.Stderr, level, FormatJSON)
}

func NewWithWriter(w io.Writer, level slog.Level, format Format) *Logger {
	return NewWithHandler(format.handler(w, level))
}

// NewWithHandler wraps an arbitrary handler, typically a test buffer.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault installs l as the logger returned by Default. A nil l is
// ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

func Default() *Logger { return defaultLogger.Load() }

// Module derives a logger tagged with module=name.
func (l *Logger) Module(name string) *Logger {
	return l.With("module", name)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Enabled(level slog.Level) bool {
	return l.inner.Enabled(context.Background(), level)
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
