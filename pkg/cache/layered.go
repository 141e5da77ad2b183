package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache implements a two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...MemoryOption) *LayeredCache {
	return &LayeredCache{
		memCache:   NewMemoryCache(opts...),
		redisCache: redisCache,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := lc.memCache.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	return lc.redisCache.Set(ctx, key, value, expiration)
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	err := lc.memCache.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	// L2 hit backfills L1 with a short TTL.
	if err := lc.redisCache.Get(ctx, key, dest); err != nil {
		return err
	}
	_ = lc.memCache.Set(ctx, key, dest, time.Minute)
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	if err := lc.memCache.Delete(ctx, keys...); err != nil {
		return err
	}
	return lc.redisCache.Delete(ctx, keys...)
}

func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
