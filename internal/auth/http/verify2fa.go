package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
)

// Verify2FAHandler completes the login state machine with a TOTP code.
type Verify2FAHandler struct {
	AuthService *service.AuthService
	Tokens      *jwtx.Manager
	Cookies     httpx.CookieConfig
}

// ServeHTTP handles POST /auth/verify-2fa
//
//	@Summary		Verify TOTP code
//	@Description	Validates the authenticator code against the caller's pending session. Identity
//	@Description	comes from the access cookie if present, otherwise from the pending refresh
//	@Description	cookie set by login. On success both cookies are re-minted with mfaVerified=true.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.Verify2FARequest	true	"6-digit code"
//	@Success		200		{object}	authsdk.Verify2FAResponse
//	@Failure		400		{object}	authsdk.APIError	"malformed body"
//	@Failure		401		{object}	authsdk.APIError	"UNAUTHORIZED, NO_MFA or INVALID_TOTP"
//	@Router			/auth/verify-2fa [post].
func (h *Verify2FAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.pendingIdentity(r)
	if !ok {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req authsdk.Verify2FARequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" {
		authsdk.ErrBadRequest.WithMessage("code is required").WriteError(w)
		return
	}

	res, err := h.AuthService.VerifyTOTP(ctx, userID, req.Code)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	h.Cookies.SetAccess(w, res.AccessToken, h.Tokens.AccessTTL)
	h.Cookies.SetRefresh(w, res.RefreshToken, h.Tokens.RefreshTTL)

	summary := res.User.Summary()
	summary.RoleName = res.RoleName

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.Verify2FAResponse{
		Success:  true,
		RoleName: res.RoleName,
		User:     userInfo(summary),
	})
}

// pendingIdentity resolves who is trying to verify. The access cookie is
// preferred; a pending refresh cookie from the login step also counts. The
// mfaVerified claim is irrelevant here, possession of a validly signed token
// is what proves the password step happened.
func (h *Verify2FAHandler) pendingIdentity(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(h.Cookies.AccessName); err == nil {
		if claims, err := h.Tokens.VerifyAccess(cookie.Value); err == nil {
			return claims.Subject, true
		}
	}

	if cookie, err := r.Cookie(h.Cookies.RefreshName); err == nil {
		if claims, err := h.Tokens.VerifyRefresh(cookie.Value); err == nil {
			return claims.Subject, true
		}
	}

	return "", false
}
