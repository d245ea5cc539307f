package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedRoleID(t *testing.T, st *Store, name string) string {
	t.Helper()

	role, err := st.Roles().GetRoleByName(context.Background(), name)
	require.NoError(t, err)
	return role.ID
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	roleID := seedRoleID(t, st, domain.RoleSupport)

	secret := "JBSWY3DPEHPK3PXP"
	user := domain.User{
		ID:           idx.New().String(),
		Name:         "Heidi",
		Email:        "heidi@example.com",
		Phone:        "+61411111111",
		PasswordHash: "hash",
		RoleID:       roleID,
		MFASecret:    &secret,
		IsActive:     true,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, got.Email)
		require.Equal(t, user.Phone, got.Phone)
		require.NotNil(t, got.MFASecret)
		require.Equal(t, secret, *got.MFASecret)
		require.Nil(t, got.LastLogin)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("get by email ignores case", func(t *testing.T) {
		got, err := st.Users().GetUserByEmail(ctx, "HEIDI@EXAMPLE.COM")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := user
		dup.ID = idx.New().String()
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("last login round trip", func(t *testing.T) {
		at := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, st.Users().UpdateLastLogin(ctx, user.ID, at))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
		require.WithinDuration(t, at, *got.LastLogin, time.Second)
	})

	t.Run("is empty", func(t *testing.T) {
		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})
}

func TestSeededRoles(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	roles, err := st.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.Name
	}
	require.ElementsMatch(t, []string{
		domain.RoleSuperAdmin, domain.RoleHRManager, domain.RoleSupport,
	}, names)
}

func TestResetTokenSingleUse(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	roleID := seedRoleID(t, st, domain.RoleSupport)

	user := domain.User{
		ID: idx.New().String(), Name: "Ivan", Email: "ivan@example.com",
		PasswordHash: "hash", RoleID: roleID, IsActive: true,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	token := domain.ResetToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "fingerprint",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.ResetTokens().CreateResetToken(ctx, token))

	now := time.Now().UTC()
	require.NoError(t, st.ResetTokens().MarkResetTokenUsed(ctx, token.ID, now))

	// A second mark must fail: the token is already consumed.
	err := st.ResetTokens().MarkResetTokenUsed(ctx, token.ID, now)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.ResetTokens().GetResetTokenByHash(ctx, "fingerprint")
	require.NoError(t, err)
	require.NotNil(t, got.UsedAt)
	require.False(t, got.Usable(time.Now().UTC()))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	roleID := seedRoleID(t, st, domain.RoleSupport)

	sentinel := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		user := domain.User{
			ID: idx.New().String(), Name: "Judy", Email: "judy@example.com",
			PasswordHash: "hash", RoleID: roleID, IsActive: true,
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.Users().GetUserByEmail(ctx, "judy@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
