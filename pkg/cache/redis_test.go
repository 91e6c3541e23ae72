package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client. Unit tests skip when no local
// Redis is reachable; tests/integration covers the containerized path.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewRedis_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewRedis should panic with nil redis client")
		}
	}()
	NewRedis(nil)
}

func TestRedis_SetAndGet(t *testing.T) {
	store := NewRedis(setupTestRedis(t))
	ctx := context.Background()

	if err := store.Set(ctx, "pokemon:bulbasaur", []byte(`{"name":"bulbasaur"}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "pokemon:bulbasaur")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"name":"bulbasaur"}` {
		t.Errorf("Get = %s, want %s", got, `{"name":"bulbasaur"}`)
	}
}

func TestRedis_Get_CacheMiss(t *testing.T) {
	store := NewRedis(setupTestRedis(t))

	_, err := store.Get(context.Background(), "pokemon:nonexistent")
	if err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedis_Set_NonPositiveTTL(t *testing.T) {
	store := NewRedis(setupTestRedis(t))
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := store.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedis_Delete(t *testing.T) {
	store := NewRedis(setupTestRedis(t))
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestRedis_Expiry(t *testing.T) {
	store := NewRedis(setupTestRedis(t))
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("value"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if _, err := store.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss for expired entry, got %v", err)
	}
}
