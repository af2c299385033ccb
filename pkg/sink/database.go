package sink

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/logshield/pkg/database"
	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// defaultInsertTimeout bounds a single insert.
const defaultInsertTimeout = 5 * time.Second

// EntryInserter stores one log entry.
type EntryInserter interface {
	Insert(ctx context.Context, e *database.LogEntry) error
}

// DatabaseProvider stores entries of every category through one inserter.
type DatabaseProvider struct {
	store    EntryInserter
	minLevel slog.Level
	timeout  time.Duration
}

// NewDatabaseProvider creates a provider storing entries at or above
// minLevel in store.
func NewDatabaseProvider(store EntryInserter, minLevel slog.Level) *DatabaseProvider {
	return &DatabaseProvider{
		store:    store,
		minLevel: minLevel,
		timeout:  defaultInsertTimeout,
	}
}

// CreateSink implements logging.SinkProvider.
func (p *DatabaseProvider) CreateSink(category string) logging.Sink {
	return &DatabaseSink{provider: p, category: category}
}

// DatabaseSink is the per-category sink of a DatabaseProvider. Scopes are
// accepted but not stored.
type DatabaseSink struct {
	provider *DatabaseProvider
	category string
}

// Enabled implements logging.Sink.
func (s *DatabaseSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.provider.minLevel
}

// BeginScope implements logging.Sink.
func (s *DatabaseSink) BeginScope(any) logging.Scope {
	return logging.NopScope{}
}

// Emit implements logging.Sink. The insert ignores ctx cancellation but
// not its values.
func (s *DatabaseSink) Emit(ctx context.Context, e logging.Entry) {
	if !s.Enabled(ctx, e.Level) {
		return
	}

	entry := &database.LogEntry{
		LoggedAt:  e.Time,
		Level:     e.Level.String(),
		Category:  s.category,
		EventID:   e.EventID.ID,
		EventName: e.EventID.Name,
		Message:   e.Message,
	}
	if e.Err != nil {
		entry.Error = e.Err.Error()
	}

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.provider.timeout)
	defer cancel()
	if err := s.provider.store.Insert(insertCtx, entry); err != nil {
		reportFailure("database", s.category, err)
	}
}

var (
	_ logging.Sink         = (*DatabaseSink)(nil)
	_ logging.SinkProvider = (*DatabaseProvider)(nil)
	_ EntryInserter        = (*database.EntryStore)(nil)
)
