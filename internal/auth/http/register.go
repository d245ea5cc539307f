package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
)

// RegisterHandler creates accounts. Routing restricts it to super-admins.
type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles POST /auth/register
//
//	@Summary		Register a user
//	@Description	Creates an account with the given role. The new user enrols in TOTP on their
//	@Description	first login. Requires a fully authenticated super-admin session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"new account"
//	@Success		201		{object}	authsdk.UserInfo	"wrapped in a data envelope"
//	@Failure		400		{object}	authsdk.APIError	"validation failure or duplicate email"
//	@Failure		401		{object}	authsdk.APIError	"UNAUTHORIZED or MFA_REQUIRED"
//	@Failure		403		{object}	authsdk.APIError	"FORBIDDEN"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, ok := httpx.SessionFromContext(ctx)
	if !ok {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req authsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch {
	case req.Name == "":
		authsdk.ErrBadRequest.WithMessage("name is required").WriteError(w)
		return
	case !validEmail(req.Email):
		authsdk.ErrBadRequest.WithMessage("a valid email is required").WriteError(w)
		return
	case len(req.Password) < minPasswordLength:
		authsdk.ErrBadRequest.WithMessage("password must be at least 8 characters").WriteError(w)
		return
	case req.RoleID == "":
		authsdk.ErrBadRequest.WithMessage("roleId is required").WriteError(w)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, role, err := h.UserService.Register(ctx, session.UserID, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		RoleID:   req.RoleID,
		IsActive: isActive,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	summary := user.Summary()
	summary.RoleName = role.Name

	httpx.WriteData(w, http.StatusCreated, userInfo(summary))
}
