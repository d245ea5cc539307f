package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
)

// LogoutHandler clears the auth cookies. Tokens signed before logout remain
// cryptographically valid until expiry; see the limitation note in README.
type LogoutHandler struct {
	Tokens  *jwtx.Manager
	Cookies httpx.CookieConfig
	Audit   *service.AuditService
}

// ServeHTTP handles POST /auth/logout
//
//	@Summary		Logout
//	@Description	Expires both auth cookies. Idempotent: succeeds whether or not a session exists.
//	@Tags			Auth
//	@Success		204	"cookies cleared"
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Best-effort actor attribution; logout succeeds regardless.
	if cookie, err := r.Cookie(h.Cookies.AccessName); err == nil {
		if claims, err := h.Tokens.VerifyAccess(cookie.Value); err == nil {
			h.Audit.Record(claims.Subject, domain.AuditLogout, "user", claims.Subject, nil)
		}
	}

	h.Cookies.ClearAuth(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
