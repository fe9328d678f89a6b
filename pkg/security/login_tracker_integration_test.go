//go:build integration

package security_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestLoginTrackerBlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := redis.NewClient(ctx, redis.Config{URL: fmt.Sprintf("redis://%s:%s", host, port.Port())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	tracker := security.NewLoginTracker(client, security.LoginTrackerConfig{
		MaxAttempts:   3,
		AttemptWindow: time.Minute,
		BlockDuration: time.Minute,
	}, security.NewSecurityLoggerWith(zap.NewNop(), "jobboard", "test"))
	require.True(t, tracker.Enabled())

	for i := 0; i < 2; i++ {
		blocked, err := tracker.RecordFailedAttempt(ctx, "Ana@X.com", "10.0.0.1", "curl", "req")
		require.NoError(t, err)
		assert.False(t, blocked)
	}

	// success resets the counter
	require.NoError(t, tracker.ClearAttempts(ctx, "ana@x.com"))
	for i := 0; i < 2; i++ {
		blocked, err := tracker.RecordFailedAttempt(ctx, "ana@x.com", "10.0.0.1", "curl", "req")
		require.NoError(t, err)
		assert.False(t, blocked)
	}

	blocked, err := tracker.RecordFailedAttempt(ctx, " ANA@x.com ", "10.0.0.1", "curl", "req")
	require.NoError(t, err)
	assert.True(t, blocked)

	isBlocked, err := tracker.IsBlocked(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, isBlocked)

	isBlocked, err = tracker.IsBlocked(ctx, "bia@x.com")
	require.NoError(t, err)
	assert.False(t, isBlocked)
}
