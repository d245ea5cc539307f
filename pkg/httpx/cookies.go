package httpx

import (
	"net/http"
	"time"
)

// Default cookie names. The CSRF cookie is deliberately not http-only: the
// frontend must read it to echo the value back in the CSRF header.
const (
	DefaultAccessCookie  = "accessToken"
	DefaultRefreshCookie = "refreshToken"
	DefaultCSRFCookie    = "csrfToken"
)

// CookieConfig carries the security attributes shared by all auth cookies.
type CookieConfig struct {
	Secure   bool
	Domain   string
	SameSite http.SameSite

	AccessName  string
	RefreshName string
	CSRFName    string
}

// WithDefaults fills in unset cookie names.
func (c CookieConfig) WithDefaults() CookieConfig {
	if c.AccessName == "" {
		c.AccessName = DefaultAccessCookie
	}
	if c.RefreshName == "" {
		c.RefreshName = DefaultRefreshCookie
	}
	if c.CSRFName == "" {
		c.CSRFName = DefaultCSRFCookie
	}
	if c.SameSite == 0 {
		c.SameSite = http.SameSiteLaxMode
	}
	return c
}

// SetAccess binds an access token to its http-only cookie with a max age
// matching the token TTL.
func (c CookieConfig) SetAccess(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, c.authCookie(c.AccessName, token, ttl))
}

// SetRefresh binds a refresh token to its http-only cookie.
func (c CookieConfig) SetRefresh(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, c.authCookie(c.RefreshName, token, ttl))
}

// SetCSRF sets the readable anti-CSRF cookie. Same attributes as the auth
// cookies except HttpOnly, which must stay false.
func (c CookieConfig) SetCSRF(w http.ResponseWriter, token string) {
	cookie := c.authCookie(c.CSRFName, token, 0)
	cookie.HttpOnly = false
	cookie.MaxAge = 0 // session cookie
	http.SetCookie(w, cookie)
}

// ClearAuth expires both token cookies. This is client-side expiry only; a
// refresh token signed before logout stays cryptographically valid until its
// natural expiry.
func (c CookieConfig) ClearAuth(w http.ResponseWriter) {
	for _, name := range []string{c.AccessName, c.RefreshName} {
		cookie := c.authCookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
	}
}

func (c CookieConfig) authCookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl / time.Second)
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}
