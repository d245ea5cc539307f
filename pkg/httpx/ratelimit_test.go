package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestUserIDKeyExtractor(t *testing.T) {
	t.Run("extracts session user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(httpx.WithSession(req.Context(), httpx.Session{UserID: "u1"}))

		require.Equal(t, "u1", httpx.UserIDKeyExtractor(req))
	})

	t.Run("empty without session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.Equal(t, "", httpx.UserIDKeyExtractor(req))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	config := httpx.RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	}

	handler := httpx.RateLimitByIP(config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows within burst then rejects", func(t *testing.T) {
		require.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
		require.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)

		rec := send("10.0.0.1:1000")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Contains(t, rec.Body.String(), "RATE_LIMITED")
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code)
	})
}
