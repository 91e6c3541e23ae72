//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts a Redis container and returns a connected client.
func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisC.Terminate(ctx)
	}

	return client, cleanup
}

func TestRedis_Integration_RoundTrip(t *testing.T) {
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store := NewRedis(client)
	ctx := context.Background()

	if err := store.Set(ctx, "pokemon:charmander", []byte(`{"name":"charmander"}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "pokemon:charmander")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"name":"charmander"}` {
		t.Errorf("Get = %s, want %s", got, `{"name":"charmander"}`)
	}
}

func TestRedis_Integration_TTLEnforcedByRedis(t *testing.T) {
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store := NewRedis(client)
	ctx := context.Background()

	if err := store.Set(ctx, "species:all", []byte(`["seed"]`), 1*time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := store.Get(ctx, "species:all"); err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if _, err := store.Get(ctx, "species:all"); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after TTL, got %v", err)
	}
}
