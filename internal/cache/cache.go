// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("invalid cache config")

// ResultCache stores encoded results by key.
type ResultCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for the configured TTL.
	Set(ctx context.Context, key string, value []byte)
	// Close releases backend resources.
	Close() error
}

// Config selects and tunes the cache backend.
type Config struct {
	Enabled       bool
	Backend       string
	TTL           time.Duration
	MaxEntries    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// DefaultConfig returns an enabled in-memory cache with a five minute TTL.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Backend:    BackendMemory,
		TTL:        5 * time.Minute,
		MaxEntries: 10000,
		RedisAddr:  "localhost:6379",
		KeyPrefix:  "shopwise:",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.TTL <= 0 {
		return fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidConfig, c.TTL)
	}
	switch c.Backend {
	case BackendMemory:
		if c.MaxEntries <= 0 {
			return fmt.Errorf("%w: max_entries must be positive, got %d", ErrInvalidConfig, c.MaxEntries)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis backend", ErrInvalidConfig)
		}
		if c.RedisDB < 0 {
			return fmt.Errorf("%w: redis_db must not be negative, got %d", ErrInvalidConfig, c.RedisDB)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	return nil
}

// New builds the configured cache. A disabled cache is a no-op.
func New(cfg Config) (ResultCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return Nop{}, nil
	}
	if cfg.Backend == BackendRedis {
		return NewRedisCache(cfg)
	}
	return NewMemoryCache(cfg.TTL, cfg.MaxEntries), nil
}

// Key derives a cache key for an operation. The model version is part of
// the key so entries never outlive the snapshot that produced them.
func Key(operation string, modelVersion int, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", params))
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:v%d:%x", operation, modelVersion, sum[:12])
}

// Nop is a ResultCache that stores nothing.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }

// Set discards value.
func (Nop) Set(context.Context, string, []byte) {}

// Close is a no-op.
func (Nop) Close() error { return nil }
