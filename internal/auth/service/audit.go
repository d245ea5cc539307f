package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/idx"
)

const defaultAuditBuffer = 256

// AuditService persists audit entries off the request path. Record is
// fire-and-forget: entries go through a buffered channel to a single writer
// goroutine, and when the buffer is full the entry is dropped with a warning
// rather than blocking a login.
type AuditService struct {
	Store  store.Store
	Logger *slog.Logger

	queue  chan domain.AuditEntry
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewAuditService creates an audit sink with the given queue depth. A
// non-positive buffer selects the default.
func NewAuditService(st store.Store, logger *slog.Logger, buffer int) *AuditService {
	if buffer <= 0 {
		buffer = defaultAuditBuffer
	}

	return &AuditService{
		Store:  st,
		Logger: logger,
		queue:  make(chan domain.AuditEntry, buffer),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the writer goroutine. Call Stop() to shut it down.
func (s *AuditService) Start() {
	go s.run()
	s.Logger.Info("audit service started", "buffer", cap(s.queue))
}

// Stop drains any queued entries and stops the writer. Blocks until the
// in-flight write finishes.
func (s *AuditService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("audit service stopped")
}

// Record enqueues one audit entry. payload may be nil or any
// JSON-marshallable value. Safe to call on a nil receiver so callers do not
// need to guard the optional sink.
func (s *AuditService) Record(actorID, action, entity, entityID string, payload any) {
	if s == nil {
		return
	}

	body := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			s.Logger.Warn("audit payload not marshallable, recording without it",
				"action", action, "err", err)
		} else {
			body = string(raw)
		}
	}

	entry := domain.AuditEntry{
		ID:        idx.New().String(),
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}

	select {
	case s.queue <- entry:
	default:
		s.Logger.Warn("audit queue full, dropping entry", "action", action, "entity_id", entityID)
	}
}

func (s *AuditService) run() {
	defer close(s.doneCh)

	for {
		select {
		case entry := <-s.queue:
			s.persist(entry)
		case <-s.stopCh:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case entry := <-s.queue:
					s.persist(entry)
				default:
					return
				}
			}
		}
	}
}

func (s *AuditService) persist(entry domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Store.AuditLog().CreateAuditEntry(ctx, entry); err != nil {
		s.Logger.Error("failed to persist audit entry",
			"action", entry.Action, "entity_id", entry.EntityID, "err", err)
	}
}
