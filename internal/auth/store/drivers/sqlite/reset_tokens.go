package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, user_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetResetTokenByHash(ctx context.Context, hash string) (domain.ResetToken, error) {
	var (
		t      domain.ResetToken
		usedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, used_at, created_at
		 FROM reset_tokens WHERE token_hash = ?`, hash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &usedAt, &t.CreatedAt)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}

	t.UsedAt = mapNullTimePtr(usedAt)
	return t, nil
}

func (r *resetTokensRepo) MarkResetTokenUsed(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		at.UTC(), id,
	)
	if err != nil {
		return err
	}

	// Losing the race to another redeem attempt must surface as not found so
	// the token stays strictly single-use.
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
