package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/cryptox"
	"github.com/jobdesk/jobdesk/pkg/idx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// ResetTokenTTL is how long a password reset token stays redeemable.
const ResetTokenTTL = 30 * time.Minute

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// RequestPasswordReset issues a single-use reset token for the account. Only
// the SHA-256 fingerprint is persisted; the raw token is returned for
// delivery out-of-band. Unknown or disabled accounts return an empty token
// and no error so the endpoint cannot be used to probe for emails.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("reset requested for unknown email")
			return "", nil
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		l.Info("reset requested for disabled account", "user_id", user.ID)
		return "", nil
	}

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := domain.ResetToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(raw),
		ExpiresAt: time.Now().UTC().Add(ResetTokenTTL),
	}
	if err := s.Store.ResetTokens().CreateResetToken(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	s.Audit.Record(user.ID, domain.AuditResetRequest, "user", user.ID, nil)

	return raw, nil
}

// ConfirmPasswordReset redeems a reset token and rewrites the password. The
// token lookup, the single-use stamp and the password update run in one
// transaction so two concurrent redeems cannot both succeed.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, rawToken, newPassword string) error {
	hash := cryptox.FingerprintToken(rawToken)

	// Hash outside the transaction; bcrypt is deliberately slow.
	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	var userID string
	now := time.Now().UTC()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		token, err := tx.ResetTokens().GetResetTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		if !token.Usable(now) {
			return ErrInvalidResetToken
		}

		if err := tx.ResetTokens().MarkResetTokenUsed(ctx, token.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}

		userID = token.UserID
		return tx.Users().UpdatePasswordHash(ctx, token.UserID, newHash)
	})
	if err != nil {
		return err
	}

	s.Audit.Record(userID, domain.AuditResetConfirm, "user", userID, nil)
	slogx.FromContext(ctx).Info("password reset completed", "user_id", userID)

	return nil
}
