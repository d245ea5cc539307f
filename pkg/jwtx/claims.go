package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short-lived access tokens limit the blast radius of a
// stolen cookie; the long refresh TTL is what keeps users logged in.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Token use markers embedded in the claims. Combined with the distinct
// signing secrets they make access and refresh tokens mutually unusable.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// Payload is the identity a token carries. MFAVerified is the partial
// authentication flag: a refresh token minted after the password step but
// before the TOTP step carries MFAVerified=false, which is how the two-step
// login survives across requests without a server-side session store.
type Payload struct {
	UserID      string
	RoleID      string
	RoleName    string
	MFAVerified bool
}

// Claims are the signed JWT claims for both token classes.
type Claims struct {
	jwt.RegisteredClaims

	RoleID      string `json:"role_id,omitempty"`
	RoleName    string `json:"role_name,omitempty"`
	MFAVerified bool   `json:"mfa_verified"`
	TokenUse    string `json:"token_use"`
}

// Payload extracts the identity payload back out of verified claims.
func (c Claims) Payload() Payload {
	return Payload{
		UserID:      c.Subject,
		RoleID:      c.RoleID,
		RoleName:    c.RoleName,
		MFAVerified: c.MFAVerified,
	}
}

func newClaims(p Payload, use, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		RoleID:      p.RoleID,
		RoleName:    p.RoleName,
		MFAVerified: p.MFAVerified,
		TokenUse:    use,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
