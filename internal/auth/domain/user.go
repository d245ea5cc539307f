package domain

import "time"

// User is an account that can sign in to the platform. Every user belongs to
// exactly one role and must complete TOTP verification before any protected
// resource is reachable.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	RoleID       string

	// MFASecret is the base32 TOTP secret. It is nil until the user's first
	// login, when enrolment generates one.
	MFASecret *string

	IsActive  bool
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MFAEnrolled reports whether the user already holds a TOTP secret.
func (u User) MFAEnrolled() bool {
	return u.MFASecret != nil && *u.MFASecret != ""
}

// UserSummary is the safe subset of a user returned by the HTTP layer. It
// never carries the password hash or the MFA secret.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName,omitempty"`
	IsActive bool   `json:"isActive"`
}

// Summary projects the user into its HTTP-safe form. The role name is left
// empty; callers that know it should fill it in.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		RoleID:   u.RoleID,
		IsActive: u.IsActive,
	}
}
