package domain

import "time"

// Canonical role names. Roles are a fixed set seeded by migration; there is
// no runtime role management.
const (
	RoleSuperAdmin = "super-admin"
	RoleHRManager  = "hr-manager"
	RoleSupport    = "support"
)

// Role is a named authorization group. Authorization is by exact role name
// membership, no hierarchy or per-role permission lists.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
