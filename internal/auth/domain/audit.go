package domain

import "time"

// Audit actions recorded by the auth service.
const (
	AuditLogin         = "auth.login"
	AuditMFAEnroll     = "auth.mfa_enroll"
	AuditMFAVerify     = "auth.mfa_verify"
	AuditLogout        = "auth.logout"
	AuditRegister      = "user.register"
	AuditResetRequest  = "auth.reset_request"
	AuditResetConfirm  = "auth.reset_confirm"
	AuditBootstrapUser = "user.bootstrap"
)

// AuditEntry is one append-only record of a security-relevant action.
// Payload holds action-specific detail as a JSON document.
type AuditEntry struct {
	ID        string
	ActorID   string
	Action    string
	Entity    string
	EntityID  string
	Payload   string
	CreatedAt time.Time
}
