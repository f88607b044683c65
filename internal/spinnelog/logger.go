// Package spinnelog provides the pipeline's process-scoped logger. There is
// no package-level global: every component that logs through this package
// receives a *Logger explicitly, so a library embedder can run multiple
// pipelines with independent verbosity in the same process. The workspace
// resolver takes no Logger and writes its walk warnings to standard error.
//
// Leveled logging over log/slog.
package spinnelog

import (
	"context"
	"io"
	"log/slog"
)

// Level is the pipeline's verbosity, set by the repeatable `-l` CLI flag
// (count of occurrences = level, 0-4).
type Level int

const (
	LevelWarn Level = iota
	LevelInfo
	LevelDebug
	LevelTrace
	LevelAll
)

func (l Level) slogLevel() slog.Level {
	switch {
	case l <= LevelWarn:
		return slog.LevelWarn
	case l == LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Logger is a leveled logger threaded explicitly through the pipeline,
// never held in a package-level variable.
type Logger struct {
	level Level
	slog  *slog.Logger
}

// New creates a Logger at the given verbosity, writing text-formatted
// records to w.
func New(w io.Writer, level Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	return &Logger{level: level, slog: slog.New(handler)}
}

// Discard returns a Logger that drops every record, for tests and library
// callers that do not want pipeline output.
func Discard() *Logger {
	return New(io.Discard, LevelWarn)
}

// Warn logs a recoverable problem: a skipped file, a dropped usage site.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Info logs a pipeline stage transition (project discovered, files parsed).
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Debug logs per-file/per-resolution detail, enabled at -ll and above.
func (l *Logger) Debug(msg string, args ...any) {
	if l.level >= LevelDebug {
		l.slog.Debug(msg, args...)
	}
}

// Trace logs per-node AST detail, enabled at -lll and above.
func (l *Logger) Trace(msg string, args ...any) {
	if l.level >= LevelTrace {
		l.slog.Debug(msg, args...)
	}
}

// loggerKey is unexported so only this package can stash a Logger in a
// context.Context.
type loggerKey struct{}

// WithContext returns a derived context carrying l.
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext retrieves the Logger stashed by WithContext, or a discarding
// Logger if none was set.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
		return l
	}
	return Discard()
}
