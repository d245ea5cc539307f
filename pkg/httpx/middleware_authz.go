package httpx

import (
	"context"
	"net/http"
	"slices"

	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// RoleResolver resolves a user's role name when the token payload lacks one.
// Implemented by the user service; kept as an interface so this package does
// not depend on the store.
type RoleResolver interface {
	RoleNameByUserID(ctx context.Context, userID string) (string, error)
}

// RequireRoles allows the request through only when the caller's role name is
// in the allow-list. AuthRequired must run first. If the token payload did
// not carry a role name, exactly one resolver lookup is performed and the
// result is cached on the request context for downstream handlers.
//
// Membership is checked by exact name only; there is no role hierarchy.
func RequireRoles(resolver RoleResolver, allowed ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, ok := SessionFromContext(ctx)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
				return
			}

			if session.RoleName == "" {
				name, err := resolver.RoleNameByUserID(ctx, session.UserID)
				if err != nil {
					slogx.FromContext(ctx).Error("failed to resolve role", "user_id", session.UserID, "err", err)
					WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
					return
				}
				session.RoleName = name
				ctx = WithSession(ctx, session)
				r = r.WithContext(ctx)
			}

			if !slices.Contains(allowed, session.RoleName) {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "role not permitted for this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
