package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer wraps a testcontainers Redis instance.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	URL       string
	Client    *redis.Client
}

// NewRedisContainer starts a Redis container for testing.
// The caller should defer container.Cleanup(t).
func NewRedisContainer(ctx context.Context, t *testing.T) *RedisContainer {
	t.Helper()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("failed to parse redis URL: %v", err)
	}

	return &RedisContainer{
		Container: container,
		URL:       url,
		Client:    redis.NewClient(opts),
	}
}

// Cleanup closes the client and terminates the container.
func (rc *RedisContainer) Cleanup(t *testing.T) {
	t.Helper()

	if rc.Client != nil {
		_ = rc.Client.Close()
	}

	if rc.Container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := rc.Container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate redis container: %v", err)
		}
	}
}
