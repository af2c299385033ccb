package logging

import (
	"context"
	"log/slog"
	"sync"
)

// recordingSink is an in-memory Sink for tests.
type recordingSink struct {
	minLevel slog.Level

	mu      sync.Mutex
	entries []Entry
	scopes  []any
	ended   int
}

func (s *recordingSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.minLevel
}

func (s *recordingSink) BeginScope(state any) Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes = append(s.scopes, state)
	return &recordingScope{sink: s}
}

func (s *recordingSink) Emit(_ context.Context, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *recordingSink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

type recordingScope struct {
	sink *recordingSink
}

func (sc *recordingScope) End() {
	sc.sink.mu.Lock()
	defer sc.sink.mu.Unlock()
	sc.sink.ended++
}

// recordingProvider hands out one recordingSink per CreateSink call.
type recordingProvider struct {
	mu      sync.Mutex
	created map[string]int
	sinks   map[string]*recordingSink
	closed  bool
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{
		created: make(map[string]int),
		sinks:   make(map[string]*recordingSink),
	}
}

func (p *recordingProvider) CreateSink(category string) Sink {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created[category]++
	s := &recordingSink{}
	p.sinks[category] = s
	return s
}

func (p *recordingProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
