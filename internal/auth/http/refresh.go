package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
)

// RefreshHandler re-mints the access cookie from the refresh cookie.
type RefreshHandler struct {
	AuthService *service.AuthService
	Tokens      *jwtx.Manager
	Cookies     httpx.CookieConfig
}

// ServeHTTP handles POST /auth/refresh
//
//	@Summary		Refresh access token
//	@Description	Mints a fresh access cookie from a valid, fully verified refresh cookie.
//	@Description	Pending refresh tokens from an incomplete login are rejected.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.RefreshResponse
//	@Failure		401	{object}	authsdk.APIError	"UNAUTHORIZED"
//	@Router			/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(h.Cookies.RefreshName)
	if err != nil {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	accessToken, err := h.AuthService.Refresh(ctx, cookie.Value)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	h.Cookies.SetAccess(w, accessToken, h.Tokens.AccessTTL)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshResponse{Ok: true})
}
