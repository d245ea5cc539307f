package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jobdesk/jobdesk/pkg/httpx"
)

// Error codes returned by the auth service.
const (
	ErrorCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrorCodeNoMFA              = "NO_MFA"
	ErrorCodeInvalidTOTP        = "INVALID_TOTP"
	ErrorCodeUnauthorized       = "UNAUTHORIZED"
	ErrorCodeMFARequired        = "MFA_REQUIRED"
	ErrorCodeForbidden          = "FORBIDDEN"
	ErrorCodeCSRF               = "CSRF_ERROR"
	ErrorCodeInvalidToken       = "INVALID_TOKEN"
	ErrorCodeBadRequest         = "BAD_REQUEST"
	ErrorCodeInternal           = "INTERNAL"
	ErrorCodeRateLimited        = "RATE_LIMITED"
)

// APIError is the error envelope used by every endpoint. It implements the
// error interface and is shared by the server (to write HTTP responses) and
// the SDK client (to surface decoded failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// errorEnvelope is the wire shape: {"error":{"code":..., "message":...}}.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithMessage returns a copy of the error with a more specific message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: message}
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: e})
}

// Predefined errors matching the service's error codes.
var (
	// ErrInvalidCredentials deliberately does not distinguish unknown email,
	// wrong password, or a disabled account.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid email or password",
	}

	// ErrNoMFA is returned when an operation requires a completed TOTP step
	// but the account has no usable secret for it.
	ErrNoMFA = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeNoMFA,
		Message:    "TOTP verification required",
	}

	// ErrInvalidTOTP is returned for a wrong or stale authenticator code.
	ErrInvalidTOTP = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidTOTP,
		Message:    "invalid verification code",
	}

	// ErrUnauthorized covers missing, expired, or malformed tokens.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "not authenticated",
	}

	// ErrMFARequired signals a pending session that has not completed the
	// TOTP step yet.
	ErrMFARequired = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeMFARequired,
		Message:    "two-factor verification required",
	}

	// ErrForbidden is returned when the caller's role is not permitted.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "role not permitted for this resource",
	}

	// ErrInvalidToken is returned for a bad password reset token.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidToken,
		Message:    "invalid or expired token",
	}

	// ErrBadRequest is returned for malformed or invalid request bodies.
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeBadRequest,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrServerError is a generic 500 that leaks no internals.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeInternal,
		Message:    "internal server error",
	}
)
