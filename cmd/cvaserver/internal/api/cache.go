package api

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache stores rendered analysis responses keyed by request digest.
// Analyses are deterministic for a given request, so cached entries never go
// stale; the TTL only bounds memory.
type ResultCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Name() string
}

// RedisCache backs the result cache with Redis.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (r *RedisCache) Get(key string) ([]byte, bool) {
	val, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(key string, value []byte) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}

func (r *RedisCache) Name() string { return "redis" }

// Ping reports whether the Redis backend is reachable.
func (r *RedisCache) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

// MemoryCache is a map-backed cache for development and testing.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.entries[key]
	return val, ok
}

func (m *MemoryCache) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryCache) Name() string { return "memory" }
