package sink

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/codeready-toolchain/logshield/pkg/database"
	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// recordingSink is an in-memory logging.Sink for tests.
type recordingSink struct {
	minLevel slog.Level

	mu      sync.Mutex
	entries []logging.Entry
	scopes  []any
	ended   int
}

func (s *recordingSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.minLevel
}

func (s *recordingSink) BeginScope(state any) logging.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes = append(s.scopes, state)
	return scopeFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.ended++
	})
}

func (s *recordingSink) Emit(_ context.Context, e logging.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *recordingSink) Entries() []logging.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]logging.Entry(nil), s.entries...)
}

type scopeFunc func()

func (f scopeFunc) End() { f() }

type staticProvider struct {
	sink   logging.Sink
	closed bool
	err    error
}

func (p *staticProvider) CreateSink(string) logging.Sink { return p.sink }

func (p *staticProvider) Close() error {
	p.closed = true
	return p.err
}

// fakeInserter stores entries in memory, or fails with err when set.
type fakeInserter struct {
	mu      sync.Mutex
	entries []*database.LogEntry
	err     error
	ctxErr  error
}

func (f *fakeInserter) Insert(ctx context.Context, e *database.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// failingHandler is a slog.Handler whose Handle always fails.
type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("handler closed")
}

func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h failingHandler) WithGroup(string) slog.Handler { return h }
