package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *jwtx.Manager {
	t.Helper()

	m, err := jwtx.NewManager(
		"access-secret-for-tests-0123456789ab",
		"refresh-secret-for-tests-0123456789a",
		0, 0, "jobdesk-test",
	)
	require.NoError(t, err)
	return m
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	handler := httpx.AuthRequired(m, httpx.CookieConfig{}, true)(okHandler())

	t.Run("missing cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultAccessCookie, Value: "garbage"})

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("mfa incomplete is distinguishable", func(t *testing.T) {
		tok, err := m.SignAccess(jwtx.Payload{UserID: "u1", MFAVerified: false})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultAccessCookie, Value: tok})

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "MFA_REQUIRED")
	})

	t.Run("valid token passes and attaches session", func(t *testing.T) {
		tok, err := m.SignAccess(jwtx.Payload{
			UserID: "u1", RoleID: "r1", RoleName: "super-admin", MFAVerified: true,
		})
		require.NoError(t, err)

		var got httpx.Session
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = httpx.SessionFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultAccessCookie, Value: tok})

		httpx.AuthRequired(m, httpx.CookieConfig{}, true)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u1", got.UserID)
		require.Equal(t, "super-admin", got.RoleName)
		require.True(t, got.MFAVerified)
	})

	t.Run("opt-out route accepts pending token", func(t *testing.T) {
		tok, err := m.SignAccess(jwtx.Payload{UserID: "u1", MFAVerified: false})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultAccessCookie, Value: tok})

		httpx.AuthRequired(m, httpx.CookieConfig{}, false)(okHandler()).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

type staticResolver struct {
	name string
	err  error

	calls int
}

func (s *staticResolver) RoleNameByUserID(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.name, s.err
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	withSession := func(s httpx.Session) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(httpx.WithSession(req.Context(), s))
	}

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler := httpx.RequireRoles(&staticResolver{}, "super-admin")(okHandler())
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("role in allow-list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler := httpx.RequireRoles(&staticResolver{}, "super-admin", "hr-manager")(okHandler())
		handler.ServeHTTP(rec, withSession(httpx.Session{UserID: "u1", RoleName: "hr-manager"}))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role not in allow-list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler := httpx.RequireRoles(&staticResolver{}, "super-admin")(okHandler())
		handler.ServeHTTP(rec, withSession(httpx.Session{UserID: "u1", RoleName: "support"}))

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "FORBIDDEN")
	})

	t.Run("resolves missing role name exactly once", func(t *testing.T) {
		resolver := &staticResolver{name: "super-admin"}

		var got httpx.Session
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = httpx.SessionFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		handler := httpx.RequireRoles(resolver, "super-admin")(inner)
		handler.ServeHTTP(rec, withSession(httpx.Session{UserID: "u1"}))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, resolver.calls)
		require.Equal(t, "super-admin", got.RoleName, "resolved role cached on context")
	})

	t.Run("resolver failure is internal", func(t *testing.T) {
		resolver := &staticResolver{err: errors.New("store down")}

		rec := httptest.NewRecorder()
		handler := httpx.RequireRoles(resolver, "super-admin")(okHandler())
		handler.ServeHTTP(rec, withSession(httpx.Session{UserID: "u1"}))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
