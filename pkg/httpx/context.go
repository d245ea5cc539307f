package httpx

import "context"

// Session is the typed authentication context attached to a request once the
// access token has been verified. It replaces ad-hoc request attachment: the
// only way in is WithSession and the only way out is SessionFromContext.
type Session struct {
	UserID      string
	RoleID      string
	RoleName    string
	MFAVerified bool
}

type sessionCtxKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session attached by AuthRequired, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(Session)
	return s, ok
}
