package store

import (
	"context"
	"errors"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a transaction entry point for multi-step operations that
// must be atomic (e.g. consuming a reset token and rewriting the password).
type Store interface {
	Users() Users
	Roles() Roles
	ResetTokens() ResetTokens
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during password login; the lookup is
	// case-insensitive on email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateMFASecret sets the TOTP secret for a user.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// UpdateLastLogin records a successful login instant.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// GetRoleByID returns a role by id.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName returns a role by its canonical name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role ordered by name.
	ListAll(ctx context.Context) ([]domain.Role, error)
}

type ResetTokens interface {
	// CreateResetToken stores a new reset token record (hash only).
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// GetResetTokenByHash returns the token by its SHA-256 fingerprint.
	GetResetTokenByHash(ctx context.Context, hash string) (domain.ResetToken, error)

	// MarkResetTokenUsed stamps used_at so the token cannot redeem twice.
	MarkResetTokenUsed(ctx context.Context, id string, at time.Time) error

	// DeleteExpiredResetTokens removes tokens past their expiry. Returns the
	// number of rows deleted.
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type AuditLog interface {
	// CreateAuditEntry appends one audit record.
	CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListRecentAuditEntries returns the newest entries, capped at limit.
	ListRecentAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error)

	// DeleteAuditEntriesBefore removes entries older than the cutoff. Returns
	// the number of rows deleted.
	DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
