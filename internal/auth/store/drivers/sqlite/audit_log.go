package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
)

type auditLogRepo struct {
	db dbtx
}

func (r *auditLogRepo) CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	payload := e.Payload
	if payload == "" {
		payload = "{}"
	}

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, action, entity, entity_id, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, mapStringNull(e.ActorID), e.Action, e.Entity, e.EntityID, payload, createdAt.UTC(),
	)
	return err
}

func (r *auditLogRepo) ListRecentAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, action, entity, entity_id, payload, created_at
		 FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var (
			e       domain.AuditEntry
			actorID sql.NullString
		)
		if err := rows.Scan(&e.ID, &actorID, &e.Action, &e.Entity, &e.EntityID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorID = mapNullString(actorID)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *auditLogRepo) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
