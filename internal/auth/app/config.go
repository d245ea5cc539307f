package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for tokens and TOTP provisioning label

	AccessSecret  string        // Required: HMAC secret for access tokens (min 32 chars)
	RefreshSecret string        // Required: HMAC secret for refresh tokens (min 32 chars, distinct)
	AccessTTL     time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL    time.Duration // Optional: refresh token lifetime (default: 720h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)

	Env       string // Environment (dev, staging, production) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	AuditRetention       time.Duration // Audit log retention, 0 keeps forever (default: 2160h / 90 days)
	AuditBuffer          int           // Audit sink queue depth (default: 256)

	CookieSecure   bool   // Secure attribute on auth cookies; forced on in production
	CookieDomain   string // Optional: Domain attribute on auth cookies
	CookieSameSite string // SameSite attribute (lax, strict, none) (default: lax)
	CSRFCookieName string // Optional: override for the CSRF cookie name
	CSRFHeaderName string // Optional: override for the CSRF header name

	// MFADevBypass accepts a fixed code in place of real TOTP validation.
	// Refused outright in production.
	MFADevBypass string

	// Initial super-admin, created only when the user table is empty.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() Config {
	// A missing .env file is fine; real deployments set the environment.
	_ = godotenv.Load()

	return Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "jobdesk-auth"),
		AccessSecret:  os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		AuditRetention:       getEnvDurationOrDefault("AUDIT_RETENTION", 90*24*time.Hour),
		AuditBuffer:          getEnvIntOrDefault("AUDIT_BUFFER", 256),

		CookieSecure:   getEnvBoolOrDefault("COOKIE_SECURE", false),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		CookieSameSite: getEnvOrDefault("COOKIE_SAMESITE", "lax"),
		CSRFCookieName: os.Getenv("CSRF_COOKIE_NAME"),
		CSRFHeaderName: os.Getenv("CSRF_HEADER_NAME"),

		MFADevBypass: os.Getenv("MFA_DEV_BYPASS"),

		AdminName:     os.Getenv("ADMIN_NAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// IsProduction reports whether the config targets a production environment.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Validate enforces the startup invariants and hardens production configs:
// secrets must be long enough and distinct, the Secure cookie attribute is
// forced on in production, and the MFA dev bypass refuses to load there.
func (c *Config) Validate() error {
	if len(c.AccessSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("AUTH_ACCESS_SECRET must be at least %d characters", jwtx.MinSecretLength)
	}
	if len(c.RefreshSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("AUTH_REFRESH_SECRET must be at least %d characters", jwtx.MinSecretLength)
	}
	if c.AccessSecret == c.RefreshSecret {
		return errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must differ")
	}

	if c.IsProduction() {
		if c.MFADevBypass != "" {
			return errors.New("MFA_DEV_BYPASS must not be set in production")
		}
		c.CookieSecure = true
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
