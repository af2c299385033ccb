// Package logging wraps log sinks with PII masking.
//
// A Sink is the minimal capability a logging backend must expose. Logger is
// a Sink that masks every message before handing it to the Sink it wraps, so
// masking loggers chain like any other sink. Provider caches one Logger per
// category on top of any SinkProvider.
//
// Handler and Processor apply the same masking at the slog.Handler and
// OpenTelemetry log processor boundaries.
package logging

import (
	"context"
	"log/slog"
	"time"
)

// EventID identifies a log event independently of its message text.
type EventID struct {
	ID   int
	Name string
}

// IsZero reports whether the event ID carries no information.
func (e EventID) IsZero() bool {
	return e.ID == 0 && e.Name == ""
}

// Entry is one log event as handed to a Sink.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	EventID EventID
	Message string
	Err     error
	// Masked is set by Logger once Message has been masked.
	Masked bool
}

// Scope is the handle returned by Sink.BeginScope. End closes the scope.
type Scope interface {
	End()
}

// Sink is a downstream logging backend.
type Sink interface {
	// Enabled reports whether entries at level would be recorded.
	Enabled(ctx context.Context, level slog.Level) bool
	// BeginScope starts a logical scope carrying state. Entries emitted
	// before the returned Scope is ended belong to it.
	BeginScope(state any) Scope
	// Emit records the entry. Sinks report their own failures; Emit never
	// fails the caller.
	Emit(ctx context.Context, e Entry)
}

// SinkProvider creates sinks by category name.
type SinkProvider interface {
	CreateSink(category string) Sink
}

// NopScope is a Scope whose End does nothing.
type NopScope struct{}

// End implements Scope.
func (NopScope) End() {}
