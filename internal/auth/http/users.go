package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// UsersHandler lists accounts for the staff dashboard.
type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles GET /users
//
//	@Summary		List users
//	@Description	Returns every account as a safe summary (no hashes, no secrets) with role
//	@Description	names resolved. Restricted to super-admin and hr-manager.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		authsdk.UserInfo	"wrapped in a data envelope"
//	@Failure		401	{object}	authsdk.APIError
//	@Failure		403	{object}	authsdk.APIError
//	@Router			/users [get].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.UserService.ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	users := make([]authsdk.UserInfo, len(summaries))
	for i, s := range summaries {
		users[i] = userInfo(s)
	}

	httpx.WriteData(w, http.StatusOK, users)
}
