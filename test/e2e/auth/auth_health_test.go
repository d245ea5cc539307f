package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestE2E_HealthEndpoints verifies the liveness and readiness probes on a
// freshly started container.
func TestE2E_HealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()
	ctx := context.Background()

	client := newClient(t, baseURL)

	health, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
	require.NotEmpty(t, health.Uptime)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
}
