package domain

import "time"

// ResetToken is a single-use password reset credential. Only the SHA-256
// fingerprint of the raw token is stored; the raw value is handed to the
// user out-of-band and never persisted.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token can still redeem a password reset at the
// given instant.
func (t ResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
