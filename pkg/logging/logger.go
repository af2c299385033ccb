package logging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/logshield/pkg/masking"
	"github.com/codeready-toolchain/logshield/pkg/metrics"
)

// Formatter produces the message of a log event from its state and error.
type Formatter func(state any, err error) string

// Logger is the masking decorator: a Sink that replaces each entry's message
// with its masked form and forwards everything else to the wrapped Sink
// unchanged. Logger holds no mutable state and is safe for concurrent use.
type Logger struct {
	category string
	inner    Sink
	redactor masking.Redactor
}

// NewLogger wraps inner. A nil redactor selects the builtin masking service.
func NewLogger(category string, inner Sink, redactor masking.Redactor) *Logger {
	if redactor == nil {
		redactor = masking.NewService(nil)
	}
	return &Logger{
		category: category,
		inner:    inner,
		redactor: redactor,
	}
}

// Category returns the category name the logger was created for.
func (l *Logger) Category() string {
	return l.category
}

// Enabled forwards to the wrapped sink.
func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

// BeginScope forwards to the wrapped sink. Scope state is not masked.
func (l *Logger) BeginScope(state any) Scope {
	return l.inner.BeginScope(state)
}

// Emit masks e.Message and forwards the entry.
func (l *Logger) Emit(ctx context.Context, e Entry) {
	e.Message = mask(l.redactor, e.Message)
	e.Masked = true
	l.inner.Emit(ctx, e)
}

// Log produces the message by calling format exactly once, masks it and
// emits it. A nil format is a no-op. A panic in format propagates to the
// caller and nothing is emitted.
func (l *Logger) Log(ctx context.Context, level slog.Level, eventID EventID, state any, err error, format Formatter) {
	if format == nil {
		return
	}
	message := format(state, err)
	l.inner.Emit(ctx, Entry{
		Time:    time.Now(),
		Level:   level,
		EventID: eventID,
		Message: mask(l.redactor, message),
		Err:     err,
		Masked:  true,
	})
}

// Logf logs a fmt-style message when level is enabled.
func (l *Logger) Logf(ctx context.Context, level slog.Level, eventID EventID, format string, args ...any) {
	if !l.Enabled(ctx, level) {
		return
	}
	l.Log(ctx, level, eventID, args, nil, func(state any, _ error) string {
		return fmt.Sprintf(format, state.([]any)...)
	})
}

// Info logs a fmt-style message at info level.
func (l *Logger) Info(ctx context.Context, format string, args ...any) {
	l.Logf(ctx, slog.LevelInfo, EventID{}, format, args...)
}

// Warn logs a fmt-style message at warn level.
func (l *Logger) Warn(ctx context.Context, format string, args ...any) {
	l.Logf(ctx, slog.LevelWarn, EventID{}, format, args...)
}

// Error logs err with a fmt-style message at error level.
func (l *Logger) Error(ctx context.Context, err error, format string, args ...any) {
	if !l.Enabled(ctx, slog.LevelError) {
		return
	}
	l.Log(ctx, slog.LevelError, EventID{}, args, err, func(state any, _ error) string {
		return fmt.Sprintf(format, state.([]any)...)
	})
}

// mask redacts message and records masking metrics.
func mask(r masking.Redactor, message string) string {
	start := time.Now()
	result := r.Redact(message)
	metrics.RecordMasking(result, time.Since(start))
	return result.Text
}

var _ Sink = (*Logger)(nil)
