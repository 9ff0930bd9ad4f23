package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// ContextKey identifies values this package reads back out of a context.
type ContextKey string

const (
	// RequestIDKey carries the request ID set by the HTTP layer.
	RequestIDKey ContextKey = "request_id"
	// UserIDKey carries the authenticated user ID.
	UserIDKey ContextKey = "user_id"
)

// Logger is a thin slog wrapper that knows how to pull request-scoped
// fields out of a context before logging.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to stdout in the given format.
func New(level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithContext returns the underlying logger annotated with any request
// or user IDs carried by ctx.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	out := l.Logger
	for _, key := range []ContextKey{RequestIDKey, UserIDKey} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			out = out.With(string(key), v)
		}
	}
	return out
}

// DebugCtx logs at debug level with context fields attached.
func (l *Logger) DebugCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Debug(msg, args...)
}

// InfoCtx logs at info level with context fields attached.
func (l *Logger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Info(msg, args...)
}

// WarnCtx logs at warn level with context fields attached.
func (l *Logger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Warn(msg, args...)
}

// ErrorCtx logs at error level with context fields attached.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, args...)
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
