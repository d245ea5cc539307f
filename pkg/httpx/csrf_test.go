package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func newGuardedServer(t *testing.T) (*httpx.CSRFGuard, http.Handler) {
	t.Helper()

	guard := httpx.NewCSRFGuard(httpx.CookieConfig{}, "")
	handler := guard.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return guard, handler
}

func TestCSRFGuard_SafeMethodsMintCookie(t *testing.T) {
	t.Parallel()

	_, handler := newGuardedServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, httpx.DefaultCSRFCookie, cookies[0].Name)
	require.False(t, cookies[0].HttpOnly, "frontend must be able to read the CSRF cookie")
	require.Len(t, cookies[0].Value, 64, "256 bits hex-encoded")
}

func TestCSRFGuard_UnsafeMethods(t *testing.T) {
	t.Parallel()

	_, handler := newGuardedServer(t)
	token := "a1b2c3d4"

	t.Run("rejected without cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(httpx.DefaultCSRFHeader, token)

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "CSRF_ERROR")
	})

	t.Run("rejected without header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultCSRFCookie, Value: token})

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejected on mismatch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultCSRFCookie, Value: token})
		req.Header.Set(httpx.DefaultCSRFHeader, "different")

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("allowed when header echoes cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.DefaultCSRFCookie, Value: token})
		req.Header.Set(httpx.DefaultCSRFHeader, token)

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCSRFGuard_EnsureTokenReusesCookie(t *testing.T) {
	t.Parallel()

	guard, _ := newGuardedServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: httpx.DefaultCSRFCookie, Value: "existing"})

	token, err := guard.EnsureToken(rec, req)
	require.NoError(t, err)
	require.Equal(t, "existing", token)
	require.Empty(t, rec.Result().Cookies(), "no new cookie should be set")
}
