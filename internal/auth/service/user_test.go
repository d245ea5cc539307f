package service

import (
	"context"
	"testing"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	role, err := st.Roles().GetRoleByName(ctx, domain.RoleSupport)
	require.NoError(t, err)

	actor := seedUser(t, st, "admin@example.com", "admin-password-1", domain.RoleSuperAdmin)

	t.Run("unknown role", func(t *testing.T) {
		_, _, err := svc.Register(ctx, actor.ID, RegisterInput{
			Name: "X", Email: "x@example.com", Password: "some-password-123", RoleID: idx.New().String(), IsActive: true,
		})
		require.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("creates user without MFA secret", func(t *testing.T) {
		user, gotRole, err := svc.Register(ctx, actor.ID, RegisterInput{
			Name:     "Grace",
			Email:    "grace@example.com",
			Phone:    "+61400000000",
			Password: "grace-password-1",
			RoleID:   role.ID,
			IsActive: true,
		})
		require.NoError(t, err)
		require.Equal(t, domain.RoleSupport, gotRole.Name)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, stored.MFAEnrolled(), "enrolment happens on first login")
		require.True(t, stored.IsActive)
		require.Equal(t, "+61400000000", stored.Phone)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, actor.ID, RegisterInput{
			Name: "Grace Again", Email: "grace@example.com", Password: "other-password-1", RoleID: role.ID, IsActive: true,
		})
		require.ErrorIs(t, err, ErrEmailTaken)

		// Same email, different case, still taken.
		_, _, err = svc.Register(ctx, actor.ID, RegisterInput{
			Name: "Grace Again", Email: "GRACE@example.com", Password: "other-password-1", RoleID: role.ID, IsActive: true,
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestListUsersAndRoleResolution(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	admin := seedUser(t, st, "admin@example.com", "admin-password-1", domain.RoleSuperAdmin)
	support := seedUser(t, st, "support@example.com", "support-pass-123", domain.RoleSupport)

	t.Run("summaries carry role names and no secrets", func(t *testing.T) {
		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		byEmail := map[string]domain.UserSummary{}
		for _, u := range users {
			byEmail[u.Email] = u
		}
		require.Equal(t, domain.RoleSuperAdmin, byEmail["admin@example.com"].RoleName)
		require.Equal(t, domain.RoleSupport, byEmail["support@example.com"].RoleName)
	})

	t.Run("role name by user id", func(t *testing.T) {
		name, err := svc.RoleNameByUserID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleSuperAdmin, name)

		name, err = svc.RoleNameByUserID(ctx, support.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleSupport, name)
	})
}
