package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/cryptox"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
	"github.com/jobdesk/jobdesk/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpPeriod = 30
	totpSkew   = 1 // accept one step either side for clock drift
)

// dummyPasswordHash keeps the failure path roughly as expensive as the
// success path so login timing does not reveal whether an email exists.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoMFA              = errors.New("TOTP verification not completed")
	ErrInvalidTOTP        = errors.New("invalid TOTP code")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthService implements the login state machine: password check, mandatory
// TOTP verification, and stateless refresh. Tokens carry an mfa_verified
// claim; until it is true the session is pending and only the verify step
// will accept it.
type AuthService struct {
	Store  store.Store
	Tokens *jwtx.Manager
	Audit  *AuditService

	// Issuer labels the otpauth provisioning URI shown in authenticator apps.
	Issuer string

	// DevBypassCode, when non-empty, is accepted in place of a real TOTP
	// code. Config refuses to set it in production.
	DevBypassCode string
}

// LoginResult is the outcome of a successful password check. The session is
// still pending: the refresh token carries mfa_verified=false and no access
// token exists yet.
type LoginResult struct {
	User         domain.User
	RoleName     string
	OtpauthURL   string
	RefreshToken string
}

// Login verifies the password and opens a pending session. Unknown emails,
// wrong passwords and disabled accounts are indistinguishable to the caller.
// First-time logins enrol the user by generating a TOTP secret; the
// provisioning URI is returned on every login so the frontend can re-display
// the QR code until verification succeeds.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyPasswordHash)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Warn("login rejected: bad password", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		l.Warn("login rejected: account disabled", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	if !user.MFAEnrolled() {
		if err := s.enrollTOTP(ctx, &user); err != nil {
			return LoginResult{}, err
		}
		s.Audit.Record(user.ID, domain.AuditMFAEnroll, "user", user.ID, nil)
		l.Info("TOTP secret generated for first login", "user_id", user.ID)
	}

	refreshToken, err := s.Tokens.SignRefresh(jwtx.Payload{
		UserID:      user.ID,
		RoleID:      user.RoleID,
		RoleName:    role.Name,
		MFAVerified: false,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		l.Error("failed to record last login", "user_id", user.ID, "err", err)
	}
	user.LastLogin = &now

	s.Audit.Record(user.ID, domain.AuditLogin, "user", user.ID, map[string]string{"email": user.Email})

	return LoginResult{
		User:         user,
		RoleName:     role.Name,
		OtpauthURL:   s.provisioningURI(user.Email, *user.MFASecret),
		RefreshToken: refreshToken,
	}, nil
}

// MFAResult is the outcome of a successful TOTP verification: a fully
// authenticated session with both tokens minted.
type MFAResult struct {
	User         domain.User
	RoleName     string
	AccessToken  string
	RefreshToken string
}

// VerifyTOTP completes the login state machine. The caller proves possession
// of a pending session (via either cookie) and a valid authenticator code;
// both tokens are re-minted with mfa_verified=true.
func (s *AuthService) VerifyTOTP(ctx context.Context, userID, code string) (MFAResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MFAResult{}, ErrUnauthorized
		}
		return MFAResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return MFAResult{}, ErrUnauthorized
	}

	if !user.MFAEnrolled() {
		return MFAResult{}, ErrNoMFA
	}

	if !s.validateCode(code, *user.MFASecret) {
		l.Warn("TOTP verification failed", "user_id", user.ID)
		return MFAResult{}, ErrInvalidTOTP
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return MFAResult{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	payload := jwtx.Payload{
		UserID:      user.ID,
		RoleID:      user.RoleID,
		RoleName:    role.Name,
		MFAVerified: true,
	}

	accessToken, err := s.Tokens.SignAccess(payload)
	if err != nil {
		return MFAResult{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.Tokens.SignRefresh(payload)
	if err != nil {
		return MFAResult{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	s.Audit.Record(user.ID, domain.AuditMFAVerify, "user", user.ID, nil)

	return MFAResult{
		User:         user,
		RoleName:     role.Name,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a fresh access token from a valid, fully verified refresh
// token. Pending refresh tokens (mfa_verified=false) are rejected: they exist
// only to carry identity into the verify step. The user row is re-checked so
// a disabled account stops refreshing immediately even though the token
// itself is still cryptographically valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrUnauthorized
	}

	payload := claims.Payload()
	if !payload.MFAVerified {
		return "", ErrUnauthorized
	}

	user, err := s.Store.Users().GetUserByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return "", ErrUnauthorized
	}

	accessToken, err := s.Tokens.SignAccess(payload)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, nil
}

// enrollTOTP generates and persists a TOTP secret, mutating user in place.
func (s *AuthService) enrollTOTP(ctx context.Context, user *domain.User) error {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Email,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	secret := key.Secret()
	if err := s.Store.Users().UpdateMFASecret(ctx, user.ID, secret); err != nil {
		return fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	user.MFASecret = &secret
	return nil
}

// validateCode checks a 6-digit authenticator code against the secret,
// allowing one period of clock drift either side.
func (s *AuthService) validateCode(code, secret string) bool {
	if s.DevBypassCode != "" && code == s.DevBypassCode {
		return true
	}

	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// provisioningURI builds the otpauth:// URI for authenticator apps. Built by
// hand rather than re-deriving an otp.Key so an already-enrolled secret
// renders the same URI on every login.
func (s *AuthService) provisioningURI(email, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", s.Issuer)
	v.Set("algorithm", otp.AlgorithmSHA1.String())
	v.Set("digits", otp.DigitsSix.String())
	v.Set("period", strconv.Itoa(totpPeriod))

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + s.Issuer + ":" + email,
		RawQuery: v.Encode(),
	}
	return u.String()
}
