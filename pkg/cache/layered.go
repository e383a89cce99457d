package cache

import (
	"context"
	"encoding/json"
	"time"
)

// LayeredCache is a two-level cache: L1 in-process memory, L2 Redis.
// Reads fill L1 on an L2 hit; writes go through to both layers.
type LayeredCache struct {
	memory *MemoryCache
	redis  *RedisCache
}

// NewLayeredCache creates a layered cache over the given Redis client.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{MemoryMaxSize: 1000}
	for _, opt := range opts {
		opt(cfg)
	}
	return &LayeredCache{
		memory: NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		redis:  redisCache,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := lc.redis.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.memory.Set(ctx, key, value, expiration)
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.memory.Get(ctx, key, dest); err == nil {
		return nil
	}
	if err := lc.redis.Get(ctx, key, dest); err != nil {
		return err
	}
	// Refill L1 from the decoded value.
	if data, err := json.Marshal(dest); err == nil {
		var raw json.RawMessage = data
		_ = lc.memory.Set(ctx, key, raw, 0)
	}
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memory.Delete(ctx, keys...)
	return lc.redis.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	return lc.redis.Exists(ctx, keys...)
}

func (lc *LayeredCache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return lc.redis.TryLock(ctx, key, ttl)
}

func (lc *LayeredCache) Unlock(ctx context.Context, key string) error {
	return lc.redis.Unlock(ctx, key)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memory.Close()
	return lc.redis.Close()
}
