package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
)

// PasswordResetHandler covers both legs of the reset flow.
type PasswordResetHandler struct {
	AuthService *service.AuthService

	// DevMode echoes the raw reset token in the response instead of 204.
	// There is no mail delivery wired up; production operators deliver the
	// token out-of-band.
	DevMode bool
}

// HandleRequest handles POST /auth/password-reset/request
//
//	@Summary		Request password reset
//	@Description	Issues a single-use reset token valid for 30 minutes. The response is identical
//	@Description	whether or not the email exists. Outside production the raw token is echoed in
//	@Description	the body for test convenience; in production the endpoint always returns 204.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetRequestRequest	true	"account email"
//	@Success		200		{object}	authsdk.ResetRequestResponse	"dev mode only"
//	@Success		204		"production"
//	@Failure		400		{object}	authsdk.APIError
//	@Router			/auth/password-reset/request [post].
func (h *PasswordResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.ResetRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) {
		authsdk.ErrBadRequest.WithMessage("a valid email is required").WriteError(w)
		return
	}

	token, err := h.AuthService.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	if h.DevMode {
		// The token is empty for unknown emails, keeping the response shape
		// identical either way.
		httpx.WriteJSON(w, http.StatusOK, authsdk.ResetRequestResponse{Token: token})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleConfirm handles POST /auth/password-reset/confirm
//
//	@Summary		Confirm password reset
//	@Description	Redeems a reset token and rewrites the password. The token is consumed
//	@Description	atomically with the password update, so it can never redeem twice.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	authsdk.ResetConfirmRequest	true	"token and new password"
//	@Success		204		"password updated"
//	@Failure		400		{object}	authsdk.APIError	"INVALID_TOKEN or validation failure"
//	@Router			/auth/password-reset/confirm [post].
func (h *PasswordResetHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.ResetConfirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		authsdk.ErrBadRequest.WithMessage("token is required").WriteError(w)
		return
	}
	if len(req.Password) < minPasswordLength {
		authsdk.ErrBadRequest.WithMessage("password must be at least 8 characters").WriteError(w)
		return
	}

	if err := h.AuthService.ConfirmPasswordReset(ctx, req.Token, req.Password); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
