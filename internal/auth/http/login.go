package http

import (
	"net/http"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
)

// LoginHandler runs the password step of the login state machine.
type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     httpx.CookieConfig
	RefreshTTL  time.Duration
}

// ServeHTTP handles POST /auth/login
//
//	@Summary		Password login
//	@Description	Verifies email and password and opens a pending session: the refresh cookie
//	@Description	carries mfaVerified=false and no access token exists until /auth/verify-2fa
//	@Description	succeeds. The otpauth URI for authenticator enrolment is returned on every login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	authsdk.LoginResponse
//	@Failure		400		{object}	authsdk.APIError	"malformed body"
//	@Failure		401		{object}	authsdk.APIError	"INVALID_CREDENTIALS"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) || req.Password == "" {
		authsdk.ErrBadRequest.WithMessage("email and password are required").WriteError(w)
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	h.Cookies.SetRefresh(w, res.RefreshToken, h.RefreshTTL)

	summary := res.User.Summary()
	summary.RoleName = res.RoleName

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		MFARequired: true,
		OtpauthURL:  res.OtpauthURL,
		User:        userInfo(summary),
	})
}
