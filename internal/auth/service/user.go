package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/cryptox"
	"github.com/jobdesk/jobdesk/pkg/idx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrRoleNotFound = errors.New("unknown role")
)

type UserService struct {
	Store store.Store
	Audit *AuditService
}

// RegisterInput is the validated payload for creating a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	RoleID   string
	IsActive bool
}

// Register creates a new account. Only super-admins reach this path; the
// HTTP layer enforces that. The new user has no TOTP secret yet, enrolment
// happens on their first login.
func (s *UserService) Register(ctx context.Context, actorID string, in RegisterInput) (domain.User, domain.Role, error) {
	l := slogx.FromContext(ctx)

	role, err := s.Store.Roles().GetRoleByID(ctx, in.RoleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.Role{}, ErrRoleNotFound
		}
		return domain.User{}, domain.Role{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, domain.Role{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		RoleID:       role.ID,
		IsActive:     in.IsActive,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.Role{}, ErrEmailTaken
		}
		return domain.User{}, domain.Role{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.Audit.Record(actorID, domain.AuditRegister, "user", user.ID, map[string]string{
		"email": user.Email,
		"role":  role.Name,
	})
	l.Info("user registered", "user_id", user.ID, "role", role.Name, "actor_id", actorID)

	return user, role, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// RoleNameByUserID resolves the role name for a user. This backs the
// authorization middleware when a token payload arrives without one.
func (s *UserService) RoleNameByUserID(ctx context.Context, userID string) (string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return "", err
	}
	return role.Name, nil
}

// ListUsers returns every account as HTTP-safe summaries with role names
// resolved.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	roles, err := s.Store.Roles().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	roleNames := make(map[string]string, len(roles))
	for _, role := range roles {
		roleNames[role.ID] = role.Name
	}

	summaries := make([]domain.UserSummary, len(users))
	for i, user := range users {
		summary := user.Summary()
		summary.RoleName = roleNames[user.RoleID]
		summaries[i] = summary
	}
	return summaries, nil
}
