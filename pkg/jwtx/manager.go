package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum byte length for a signing secret. Anything
// shorter is brute-forceable and refused at construction time.
const MinSecretLength = 32

var (
	// ErrInvalidToken covers signature failure, expiry, wrong token class and
	// malformed payloads alike. Callers must not be able to distinguish them.
	ErrInvalidToken = errors.New("jwtx: invalid or expired token")

	ErrSecretTooShort = errors.New("jwtx: signing secret shorter than 32 bytes")
	ErrSecretsEqual   = errors.New("jwtx: access and refresh secrets must differ")
)

// Manager signs and verifies the two token classes. Access and refresh tokens
// use distinct secrets so a compromise of one class cannot forge the other.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// NewManager validates the secrets and returns a ready Manager. Zero TTLs
// fall back to the package defaults.
func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) (*Manager, error) {
	if len(accessSecret) < MinSecretLength || len(refreshSecret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if accessSecret == refreshSecret {
		return nil, ErrSecretsEqual
	}

	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Issuer:        issuer,
	}, nil
}

// SignAccess mints an access token for the payload.
func (m *Manager) SignAccess(p Payload) (string, error) {
	return m.sign(p, UseAccess, m.AccessTTL, m.accessSecret)
}

// SignRefresh mints a refresh token for the payload.
func (m *Manager) SignRefresh(p Payload) (string, error) {
	return m.sign(p, UseRefresh, m.RefreshTTL, m.refreshSecret)
}

// VerifyAccess validates signature, expiry and token class for an access token.
func (m *Manager) VerifyAccess(token string) (Claims, error) {
	return m.verify(token, UseAccess, m.accessSecret)
}

// VerifyRefresh validates signature, expiry and token class for a refresh token.
func (m *Manager) VerifyRefresh(token string) (Claims, error) {
	return m.verify(token, UseRefresh, m.refreshSecret)
}

func (m *Manager) sign(p Payload, use string, ttl time.Duration, secret []byte) (string, error) {
	claims := newClaims(p, use, m.Issuer, ttl, time.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *Manager) verify(token, use string, secret []byte) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.TokenUse != use || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
