package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestAuditService(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("records are persisted by the worker", func(t *testing.T) {
		st := newTestStore(t)
		svc := NewAuditService(st, logger, 8)
		svc.Start()

		svc.Record("actor-1", domain.AuditLogin, "user", "user-1", map[string]string{"email": "a@example.com"})
		svc.Record("", domain.AuditResetRequest, "user", "user-2", nil)

		// Stop drains the queue before returning.
		svc.Stop()

		entries, err := st.AuditLog().ListRecentAuditEntries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		byAction := map[string]domain.AuditEntry{}
		for _, e := range entries {
			byAction[e.Action] = e
		}
		require.Equal(t, "actor-1", byAction[domain.AuditLogin].ActorID)
		require.Contains(t, byAction[domain.AuditLogin].Payload, "a@example.com")
		require.Equal(t, "{}", byAction[domain.AuditResetRequest].Payload)
	})

	t.Run("nil sink is safe", func(t *testing.T) {
		var svc *AuditService
		svc.Record("actor", domain.AuditLogin, "user", "u1", nil)
	})
}
