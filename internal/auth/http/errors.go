package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// writeServiceError maps service sentinel errors onto the API error
// envelope. Anything unrecognised is logged and returned as a generic 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrNoMFA):
		authsdk.ErrNoMFA.WriteError(w)
	case errors.Is(err, service.ErrInvalidTOTP):
		authsdk.ErrInvalidTOTP.WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		authsdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrInvalidResetToken):
		authsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrBadRequest.WithMessage("email already registered").WriteError(w)
	case errors.Is(err, service.ErrRoleNotFound):
		authsdk.ErrBadRequest.WithMessage("unknown role").WriteError(w)
	default:
		slogx.FromContext(ctx).Error("unhandled service error", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
