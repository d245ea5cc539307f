package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, phone, password_hash, role_id, mfa_secret, is_active, last_login, created_at, updated_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		phone     sql.NullString
		mfaSecret sql.NullString
		lastLogin sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.RoleID,
		&mfaSecret, &u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Phone = mapNullString(phone)
	u.MFASecret = mapNullStringPtr(mfaSecret)
	u.LastLogin = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := r.scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email)

	u, err := r.scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, password_hash, role_id, mfa_secret, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, mapStringNull(u.Phone), u.PasswordHash, u.RoleID,
		mapOptionalString(u.MFASecret), u.IsActive, now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID string, secret string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET mfa_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`,
		at.UTC(), time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
