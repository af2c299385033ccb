// Package sink provides the downstream sinks the masking logger writes to:
// slog handlers, OpenTelemetry loggers, JSON-lines files and PostgreSQL.
package sink

import (
	"context"
	"log/slog"

	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// SlogSink writes entries to a slog.Handler.
type SlogSink struct {
	handler  slog.Handler
	category string
	scopes   scopeStack
}

// NewSlogSink creates a sink for category writing to handler.
func NewSlogSink(handler slog.Handler, category string) *SlogSink {
	return &SlogSink{handler: handler, category: category}
}

// Enabled implements logging.Sink.
func (s *SlogSink) Enabled(ctx context.Context, level slog.Level) bool {
	return s.handler.Enabled(ctx, level)
}

// BeginScope implements logging.Sink.
func (s *SlogSink) BeginScope(state any) logging.Scope {
	return s.scopes.push(state)
}

// Emit implements logging.Sink.
func (s *SlogSink) Emit(ctx context.Context, e logging.Entry) {
	if !s.handler.Enabled(ctx, e.Level) {
		return
	}

	r := slog.NewRecord(e.Time, e.Level, e.Message, 0)
	r.AddAttrs(slog.String("category", s.category))
	if !e.EventID.IsZero() {
		r.AddAttrs(slog.Int("event_id", e.EventID.ID))
		if e.EventID.Name != "" {
			r.AddAttrs(slog.String("event_name", e.EventID.Name))
		}
	}
	if scopes := s.scopes.states(); len(scopes) > 0 {
		r.AddAttrs(slog.Any("scopes", scopes))
	}
	if e.Err != nil {
		r.AddAttrs(slog.String("error", e.Err.Error()))
	}

	if err := s.handler.Handle(ctx, r); err != nil {
		reportFailure("slog", s.category, err)
	}
}

// SlogProvider creates SlogSinks sharing one handler.
type SlogProvider struct {
	handler slog.Handler
}

// NewSlogProvider creates a provider writing to handler.
// A nil handler selects the handler of slog.Default().
func NewSlogProvider(handler slog.Handler) *SlogProvider {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SlogProvider{handler: handler}
}

// CreateSink implements logging.SinkProvider.
func (p *SlogProvider) CreateSink(category string) logging.Sink {
	return NewSlogSink(p.handler, category)
}

var (
	_ logging.Sink         = (*SlogSink)(nil)
	_ logging.SinkProvider = (*SlogProvider)(nil)
)
