// Package cleanup enforces the retention policy of the database sink.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/logshield/pkg/config"
)

// EntryPruner deletes stored log entries older than a cutoff.
type EntryPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service periodically removes log entries past their retention.
// Deletion is idempotent and safe to run from multiple replicas.
type Service struct {
	config *config.DatabaseSinkConfig
	store  EntryPruner
	now    func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new cleanup service.
func NewService(cfg *config.DatabaseSinkConfig, store EntryPruner) *Service {
	return &Service{
		config: cfg,
		store:  store,
		now:    time.Now,
	}
}

// Start launches the background cleanup loop. It does nothing when
// retention is disabled or the service is already running.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	if s.config.Retention <= 0 {
		slog.Info("Cleanup service disabled, log entries are kept indefinitely")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("Cleanup service started",
		"retention", s.config.Retention,
		"interval", s.config.CleanupInterval)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	slog.Info("Cleanup service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.pruneEntries(ctx)

	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pruneEntries(ctx)
		}
	}
}

func (s *Service) pruneEntries(ctx context.Context) {
	cutoff := s.now().Add(-s.config.Retention)
	count, err := s.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("Retention: log entry cleanup failed", "error", err)
		}
		return
	}
	if count > 0 {
		slog.Info("Retention: deleted expired log entries", "count", count, "cutoff", cutoff)
	}
}
