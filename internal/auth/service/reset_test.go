package service

import (
	"context"
	"testing"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/pkg/cryptox"
	"github.com/jobdesk/jobdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestAuth(t, st)

	seedUser(t, st, "erin@example.com", "original-password", domain.RoleSupport)

	t.Run("unknown email returns empty token without error", func(t *testing.T) {
		raw, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
		require.NoError(t, err)
		require.Empty(t, raw)
	})

	t.Run("known email issues a redeemable token", func(t *testing.T) {
		raw, err := svc.RequestPasswordReset(ctx, "erin@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, raw)

		// Only the fingerprint is stored.
		stored, err := st.ResetTokens().GetResetTokenByHash(ctx, cryptox.FingerprintToken(raw))
		require.NoError(t, err)
		require.Nil(t, stored.UsedAt)
		require.True(t, stored.ExpiresAt.After(time.Now()))
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestAuth(t, st)

	user := seedUser(t, st, "frank@example.com", "old-password-123", domain.RoleHRManager)

	t.Run("garbage token", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(ctx, "garbage", "new-password-456")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("redeem rewrites the password exactly once", func(t *testing.T) {
		raw, err := svc.RequestPasswordReset(ctx, "frank@example.com")
		require.NoError(t, err)

		require.NoError(t, svc.ConfirmPasswordReset(ctx, raw, "new-password-456"))

		// Old password no longer works, new one does.
		_, err = svc.Login(ctx, "frank@example.com", "old-password-123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Login(ctx, "frank@example.com", "new-password-456")
		require.NoError(t, err)

		// Second redeem of the same token must fail.
		err = svc.ConfirmPasswordReset(ctx, raw, "sneaky-password-789")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("expired token", func(t *testing.T) {
		raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		expired := domain.ResetToken{
			ID:        idx.New().String(),
			UserID:    user.ID,
			TokenHash: cryptox.FingerprintToken(raw),
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
		}
		require.NoError(t, st.ResetTokens().CreateResetToken(ctx, expired))

		err = svc.ConfirmPasswordReset(ctx, raw, "new-password-456")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})
}
