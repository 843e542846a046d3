package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotency(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryIdempotency(time.Minute)
	store.now = func() time.Time { return now }

	ok, err := store.Claim(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = store.Claim(ctx, "k1")
	assert.False(t, ok)

	require.NoError(t, store.Release(ctx, "k1"))
	ok, _ = store.Claim(ctx, "k1")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = store.Claim(ctx, "k1")
	assert.True(t, ok, "expired key is claimable again")
}

func TestMemoryIdempotency_SweepsOncePerTTL(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	store := NewMemoryIdempotency(time.Minute)
	store.now = func() time.Time { return now }
	claim := func(offset time.Duration, key string) bool {
		now = start.Add(offset)
		ok, err := store.Claim(ctx, key)
		require.NoError(t, err)
		return ok
	}

	require.True(t, claim(0, "a"))
	require.True(t, claim(0, "b"))
	require.True(t, claim(30*time.Second, "c"))
	assert.Len(t, store.keys, 3)

	require.True(t, claim(61*time.Second, "d"))
	assert.ElementsMatch(t, []string{"c", "d"}, keysOf(store))

	// c expired at 90s; the next sweep is not due until 121s.
	require.True(t, claim(100*time.Second, "f"))
	assert.ElementsMatch(t, []string{"c", "d", "f"}, keysOf(store))
	assert.True(t, claim(100*time.Second, "c"), "expired key is claimable before it is swept")

	require.True(t, claim(125*time.Second, "g"))
	assert.ElementsMatch(t, []string{"c", "f", "g"}, keysOf(store))
}

func keysOf(m *MemoryIdempotency) []string {
	out := make([]string, 0, len(m.keys))
	for k := range m.keys {
		out = append(out, k)
	}
	return out
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := NewClient(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisIdempotency(client, time.Minute)
	key := "test-" + uuid.NewString()
	defer client.Del(ctx, idempotencyKeyPrefix+key)

	ok, err := store.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, idempotencyKeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Release(ctx, key))
	ok, err = store.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Addr: "localhost:1"})
	assert.Error(t, err)
}
