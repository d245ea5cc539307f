package httpx

import (
	"errors"
	"net/http"

	"github.com/jobdesk/jobdesk/pkg/cryptox"
	"github.com/jobdesk/jobdesk/pkg/slogx"
)

// DefaultCSRFHeader is the header that must echo the CSRF cookie value on
// unsafe methods.
const DefaultCSRFHeader = "x-csrf-token"

// ErrNoCSRFToken is returned by CSRFTokenFromRequest when no cookie is set.
var ErrNoCSRFToken = errors.New("httpx: no csrf cookie")

// CSRFGuard implements the double-submit-cookie pattern. It needs no
// server-side state: forging a request requires reading the cookie, which
// same-origin policy prevents for cross-site attackers.
type CSRFGuard struct {
	Cookies    CookieConfig
	HeaderName string
}

// NewCSRFGuard returns a guard with defaults applied.
func NewCSRFGuard(cookies CookieConfig, headerName string) *CSRFGuard {
	if headerName == "" {
		headerName = DefaultCSRFHeader
	}
	return &CSRFGuard{Cookies: cookies.WithDefaults(), HeaderName: headerName}
}

// EnsureToken returns the current CSRF token, minting and setting a fresh one
// if the request carries none. 256 bits of entropy, hex-encoded.
func (g *CSRFGuard) EnsureToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(g.Cookies.CSRFName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	token, err := cryptox.GenerateHexToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	g.Cookies.SetCSRF(w, token)
	return token, nil
}

// Middleware enforces the double-submit check on unsafe methods and lazily
// mints the cookie on safe ones.
func (g *CSRFGuard) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if _, err := g.EnsureToken(w, r); err != nil {
					slogx.FromContext(r.Context()).Error("failed to mint csrf token", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(g.Cookies.CSRFName)
			if err != nil || cookie.Value == "" {
				writeCSRFError(w)
				return
			}

			header := r.Header.Get(g.HeaderName)
			if header == "" || !cryptox.ConstantTimeEquals(header, cookie.Value) {
				writeCSRFError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeCSRFError(w http.ResponseWriter) {
	WriteError(w, http.StatusForbidden, "CSRF_ERROR", "missing or mismatched CSRF token")
}
