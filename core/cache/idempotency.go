package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// IdempotencyStore remembers submission keys for a limited time.
type IdempotencyStore interface {
	// Claim records key and reports whether it was new.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key so the submission can be retried.
	Release(ctx context.Context, key string) error
}

// RedisIdempotency stores keys in Redis with SETNX.
type RedisIdempotency struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotency creates a store that keeps keys for ttl.
func NewRedisIdempotency(client *redis.Client, ttl time.Duration) *RedisIdempotency {
	return &RedisIdempotency{client: client, ttl: ttl}
}

func (r *RedisIdempotency) Claim(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, r.ttl).Result()
}

func (r *RedisIdempotency) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}

// MemoryIdempotency is the single-process fallback used when Redis is disabled.
type MemoryIdempotency struct {
	mu        sync.Mutex
	keys      map[string]time.Time
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryIdempotency creates an in-process store that keeps keys for ttl.
func NewMemoryIdempotency(ttl time.Duration) *MemoryIdempotency {
	return &MemoryIdempotency{keys: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

func (m *MemoryIdempotency) Claim(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if exp, ok := m.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	m.keys[key] = now.Add(m.ttl)
	m.sweep(now)
	return true, nil
}

// sweep drops expired keys at most once per ttl. Must be called with mu held.
func (m *MemoryIdempotency) sweep(now time.Time) {
	if m.nextSweep.IsZero() {
		m.nextSweep = now.Add(m.ttl)
		return
	}
	if now.Before(m.nextSweep) {
		return
	}
	for k, exp := range m.keys {
		if !now.Before(exp) {
			delete(m.keys, k)
		}
	}
	m.nextSweep = now.Add(m.ttl)
}

func (m *MemoryIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}
