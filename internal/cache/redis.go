// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/metrics"
)

const redisOpTimeout = 250 * time.Millisecond

// RedisCache shares results between replicas through Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects to cfg.RedisAddr and verifies the connection.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return NewRedisCacheWithClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, prefix string) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: prefix}
}

// Get implements ResultCache. Redis errors are logged and treated as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup(BackendRedis, false)
		return nil, false
	}
	if err != nil {
		metrics.RecordCacheError(BackendRedis)
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("redis cache get failed")
		return nil, false
	}
	metrics.RecordCacheLookup(BackendRedis, true)
	return data, true
}

// Set implements ResultCache.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		metrics.RecordCacheError(BackendRedis)
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("redis cache set failed")
	}
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
