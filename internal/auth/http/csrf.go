package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// CSRFHandler hands the frontend its double-submit token.
type CSRFHandler struct {
	Guard *httpx.CSRFGuard
}

// ServeHTTP handles GET /auth/csrf
//
//	@Summary		Fetch CSRF token
//	@Description	Mints (or returns the existing) CSRF double-submit token and the header name to echo it in.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.CSRFResponse	"wrapped in a data envelope"
//	@Failure		500	{object}	authsdk.APIError
//	@Router			/auth/csrf [get].
func (h *CSRFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, err := h.Guard.EnsureToken(w, r)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to mint CSRF token", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, authsdk.CSRFResponse{
		CSRFToken:  token,
		HeaderName: h.Guard.HeaderName,
	})
}
