package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Cookie and header names the client mirrors from the server.
const (
	csrfCookieName = "csrfToken"
	csrfHeaderName = "x-csrf-token"
)

// Client talks to the auth service the way a browser would: tokens live in a
// cookie jar, and the CSRF double-submit header is echoed automatically on
// unsafe requests. Primarily used by the end-to-end tests.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a fresh cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// csrfToken returns the current CSRF cookie value, if any.
func (c *Client) csrfToken() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.HTTPClient.Jar.Cookies(u) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// do performs one JSON round trip. Non-2xx responses are decoded into an
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && method != http.MethodHead {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(csrfHeaderName, token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns an error response into an *APIError. Responses that do
// not match the envelope still produce a usable error.
func decodeError(resp *http.Response) error {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       ErrorCodeInternal,
			Message:    fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
		}
	}
	envelope.Error.StatusCode = resp.StatusCode
	return envelope.Error
}

// FetchCSRF primes the cookie jar with a CSRF token. Call it before the
// first unsafe request.
func (c *Client) FetchCSRF(ctx context.Context) (*CSRFResponse, error) {
	var out dataEnvelope[CSRFResponse]
	if err := c.do(ctx, http.MethodGet, "/auth/csrf", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Login performs the password step. On success the jar holds a pending
// refresh cookie and the response carries the otpauth enrolment URI.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify2FA completes the login with an authenticator code. On success the
// jar holds verified access and refresh cookies.
func (c *Client) Verify2FA(ctx context.Context, code string) (*Verify2FAResponse, error) {
	var out Verify2FAResponse
	err := c.do(ctx, http.MethodPost, "/auth/verify-2fa", Verify2FARequest{Code: code}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh re-mints the access cookie from the refresh cookie.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil)
}

// Logout clears the auth cookies. Idempotent.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Register creates a new account. Requires a super-admin session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	var out dataEnvelope[UserInfo]
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// RequestPasswordReset asks for a reset token. The returned token is empty
// in production, where delivery happens out-of-band.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var out ResetRequestResponse
	err := c.do(ctx, http.MethodPost, "/auth/password-reset/request", ResetRequestRequest{Email: email}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// ConfirmPasswordReset redeems a reset token with a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset/confirm",
		ResetConfirmRequest{Token: token, Password: newPassword}, nil)
}

// ListUsers returns every account. Requires super-admin or hr-manager.
func (c *Client) ListUsers(ctx context.Context) ([]UserInfo, error) {
	var out dataEnvelope[[]UserInfo]
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks the readiness probe.
func (c *Client) Readyz(ctx context.Context) (*ReadyzResponse, error) {
	var out ReadyzResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
