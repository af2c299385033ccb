package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 100

// LogEntry is one masked log entry as stored in log_entries.
// Message has already been masked by the time it reaches the store.
type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	LoggedAt  time.Time `json:"logged_at"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	EventID   int       `json:"event_id,omitempty"`
	EventName string    `json:"event_name,omitempty"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions filters List. A zero value lists the most recent entries of
// every category.
type ListOptions struct {
	Category string
	Limit    int
}

// EntryStore reads and writes log_entries.
type EntryStore struct {
	db *sql.DB
}

// NewEntryStore creates a store over db.
func NewEntryStore(db *sql.DB) *EntryStore {
	return &EntryStore{db: db}
}

// Insert stores e, assigning an ID if it has none and filling CreatedAt.
func (s *EntryStore) Insert(ctx context.Context, e *LogEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now()
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO log_entries (id, logged_at, level, category, event_id, event_name, message, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING created_at`,
		e.ID, e.LoggedAt, e.Level, e.Category, e.EventID, e.EventName, e.Message, e.Error,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (s *EntryStore) List(ctx context.Context, opts ListOptions) ([]LogEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, logged_at, level, category, event_id, event_name, message, COALESCE(error, ''), created_at
		FROM log_entries
		WHERE $1 = '' OR category = $1
		ORDER BY logged_at DESC
		LIMIT $2`,
		opts.Category, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.LoggedAt, &e.Level, &e.Category, &e.EventID, &e.EventName, &e.Message, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	return entries, nil
}

// DeleteBefore removes entries logged before cutoff and returns how many
// were removed.
func (s *EntryStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM log_entries WHERE logged_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete log entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted log entries: %w", err)
	}
	return n, nil
}
