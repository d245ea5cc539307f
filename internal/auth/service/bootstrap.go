package service

import (
	"context"
	"fmt"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/cryptox"
	"github.com/jobdesk/jobdesk/pkg/idx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

type BootstrapService struct {
	Store store.Store
	Audit *AuditService
}

// EnsureAdmin seeds the first super-admin account when the user table is
// empty. It is a no-op on an already-populated database or when credentials
// are not configured, so it is safe to run on every startup. The admin
// enrols in TOTP on their first login like any other user.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	l := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return false, nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user table: %w", err)
	}
	if !empty {
		return false, nil
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to resolve super-admin role: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	if name == "" {
		name = "Administrator"
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		IsActive:     true,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	s.Audit.Record(admin.ID, domain.AuditBootstrapUser, "user", admin.ID, map[string]string{"email": email})
	l.Info("initial super-admin created", "user_id", admin.ID, "email", email)

	return true, nil
}
