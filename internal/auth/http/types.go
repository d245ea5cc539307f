package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
)

// minPasswordLength applies to registration and password reset. Login
// accepts whatever was stored.
const minPasswordLength = 8

// userInfo projects a domain summary into the wire type.
func userInfo(s domain.UserSummary) authsdk.UserInfo {
	return authsdk.UserInfo{
		ID:       s.ID,
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		RoleID:   s.RoleID,
		RoleName: s.RoleName,
		IsActive: s.IsActive,
	}
}

// decodeJSON parses the request body into v. A false return means the error
// response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		authsdk.ErrBadRequest.WithMessage("invalid JSON body").WriteError(w)
		return false
	}
	return true
}

// validEmail is a cheap plausibility check; the unique index is the real
// guard against bad data.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
