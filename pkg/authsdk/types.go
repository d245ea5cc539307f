package authsdk

// UserInfo is the public projection of a user account.
type UserInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName,omitempty"`
	IsActive bool   `json:"isActive"`
}

// LoginRequest is the password step of the login state machine.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports a pending session. The otpauth URI is returned on
// every login so the frontend can re-display the enrolment QR code until the
// first verification succeeds.
type LoginResponse struct {
	MFARequired bool     `json:"mfaRequired"`
	OtpauthURL  string   `json:"otpauthUrl"`
	User        UserInfo `json:"user"`
}

// Verify2FARequest carries the 6-digit authenticator code.
type Verify2FARequest struct {
	Code string `json:"code"`
}

// Verify2FAResponse reports a fully authenticated session.
type Verify2FAResponse struct {
	Success  bool     `json:"success"`
	RoleName string   `json:"roleName"`
	User     UserInfo `json:"user"`
}

// RefreshResponse acknowledges a re-minted access cookie.
type RefreshResponse struct {
	Ok bool `json:"ok"`
}

// RegisterRequest creates a new account. Only super-admins may call it.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	RoleID   string `json:"roleId"`

	// IsActive defaults to true when omitted.
	IsActive *bool `json:"isActive,omitempty"`
}

// ResetRequestRequest asks for a password reset token for the given email.
type ResetRequestRequest struct {
	Email string `json:"email"`
}

// ResetRequestResponse carries the raw reset token. Only populated outside
// production, where no mail delivery is wired up.
type ResetRequestResponse struct {
	Token string `json:"token,omitempty"`
}

// ResetConfirmRequest redeems a reset token.
type ResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CSRFResponse tells the frontend which token and header to echo on unsafe
// requests.
type CSRFResponse struct {
	CSRFToken  string `json:"csrfToken"`
	HeaderName string `json:"headerName"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// ReadyzResponse is returned by the readiness probe.
type ReadyzResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// dataEnvelope is the success wrapper used by data-carrying endpoints.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}
