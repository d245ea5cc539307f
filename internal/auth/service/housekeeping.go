package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/store"
)

// HousekeepingService periodically cleans up expired database records to
// prevent unbounded growth of reset_tokens and audit_log.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// AuditRetention bounds how long audit entries are kept. Zero disables
	// audit pruning entirely.
	AuditRetention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, auditRetention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:          store,
		Logger:         logger,
		Interval:       interval,
		AuditRetention: auditRetention,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletion of expired records.
// Each deletion is independent - failures in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	if deleted, err := s.Store.ResetTokens().DeleteExpiredResetTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired reset tokens", "error", err)
	} else if deleted > 0 {
		s.Logger.Info("deleted expired reset tokens", "count", deleted)
	}

	if s.AuditRetention > 0 {
		cutoff := now.Add(-s.AuditRetention)
		if deleted, err := s.Store.AuditLog().DeleteAuditEntriesBefore(ctx, cutoff); err != nil {
			s.Logger.Error("failed to prune audit log", "error", err)
		} else if deleted > 0 {
			s.Logger.Info("pruned audit log", "count", deleted, "cutoff", cutoff)
		}
	}
}
