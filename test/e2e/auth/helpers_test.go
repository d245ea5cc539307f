package auth_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "jobdesk-auth-test:latest"

	adminName     = "Administrator"
	adminEmail    = "admin@jobdesk.test"
	adminPassword = "Admin123!"

	// Role IDs seeded by migration 0002_seed_roles.
	roleSuperAdminID = "01JD3A8A4N0000000000000001"
	roleHRManagerID  = "01JD3A8A4N0000000000000002"
	roleSupportID    = "01JD3A8A4N0000000000000003"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// baseContainerEnv returns the environment shared by all test containers.
// ENV is "dev" so the password reset endpoint echoes tokens back.
func baseContainerEnv() map[string]string {
	return map[string]string{
		"AUTH_ACCESS_SECRET":  "e2e-access-secret-0123456789abcdef",
		"AUTH_REFRESH_SECRET": "e2e-refresh-secret-0123456789abcde",
		"AUTH_DATABASE_FILE":  "/auth.db",
		"AUTH_ISSUER":         "jobdesk-auth",
		"ENV":                 "dev",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
		"ADMIN_NAME":          adminName,
		"ADMIN_EMAIL":         adminEmail,
		"ADMIN_PASSWORD":      adminPassword,
	}
}

// setupAuthContainer starts the auth service in a container and returns the base URL.
// Rate limits are relaxed so rapid test requests do not hit the strict defaults.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := baseContainerEnv()
	env["RATELIMIT_STRICT_REQUESTS"] = "1000"
	env["RATELIMIT_STRICT_WINDOW_SEC"] = "60"
	env["RATELIMIT_STRICT_BURST"] = "1000"
	env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
	env["RATELIMIT_MODERATE_BURST"] = "1000"

	return startContainer(t, env)
}

// setupAuthContainerWithDefaultRateLimits starts the auth service with DEFAULT rate limits.
// This is specifically for testing that rate limiting actually works.
// Most tests should use setupAuthContainer() which has relaxed limits to prevent test failures.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseContainerEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get the mapped port
	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// newClient creates an SDK client with its CSRF cookie already primed.
func newClient(t *testing.T, baseURL string) *authsdk.Client {
	t.Helper()
	ctx := context.Background()

	client, err := authsdk.NewClient(baseURL)
	require.NoError(t, err)

	_, err = client.FetchCSRF(ctx)
	require.NoError(t, err)

	return client
}

// totpCode derives the current authenticator code from an otpauth
// provisioning URI, the same way an authenticator app would.
func totpCode(t *testing.T, otpauthURL string) string {
	t.Helper()

	u, err := url.Parse(otpauthURL)
	require.NoError(t, err)
	secret := u.Query().Get("secret")
	require.NotEmpty(t, secret, "otpauth URL should carry the shared secret")

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	return code
}

// performLogin runs the full two-step login and returns the authenticated client.
func performLogin(t *testing.T, baseURL, email, password string) *authsdk.Client {
	t.Helper()
	ctx := context.Background()

	client := newClient(t, baseURL)

	loginResp, err := client.Login(ctx, email, password)
	require.NoError(t, err, "Login should succeed")
	require.True(t, loginResp.MFARequired)
	require.NotEmpty(t, loginResp.OtpauthURL)

	verifyResp, err := client.Verify2FA(ctx, totpCode(t, loginResp.OtpauthURL))
	require.NoError(t, err, "2FA verification should succeed")
	require.True(t, verifyResp.Success)

	return client
}

// requireAPIError asserts that err is an *authsdk.APIError with the given
// status and code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
