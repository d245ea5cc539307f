package httpx

import (
	"net/http"

	"github.com/jobdesk/jobdesk/pkg/jwtx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// AuthRequired verifies the access-token cookie and attaches a typed Session
// to the request context. With requireMFA true (the default for protected
// routes) a valid token that has not completed the TOTP step is rejected with
// MFA_REQUIRED so the frontend can distinguish "log in again" from "finish
// your 2FA".
func AuthRequired(m *jwtx.Manager, cookies CookieConfig, requireMFA bool) Middleware {
	cookies = cookies.WithDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(cookies.AccessName)
			if err != nil || cookie.Value == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
				return
			}

			claims, err := m.VerifyAccess(cookie.Value)
			if err != nil {
				log.Warn("access token verification failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired access token")
				return
			}

			if requireMFA && !claims.MFAVerified {
				WriteError(w, http.StatusUnauthorized, "MFA_REQUIRED", "two-factor verification not completed")
				return
			}

			p := claims.Payload()
			ctx = WithSession(ctx, Session{
				UserID:      p.UserID,
				RoleID:      p.RoleID,
				RoleName:    p.RoleName,
				MFAVerified: p.MFAVerified,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
