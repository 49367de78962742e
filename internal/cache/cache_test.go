// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/shopwise/internal/metrics"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 10)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	c.Set(ctx, "k", []byte("v"))
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("Get() = %q, %v; want v, true", got, ok)
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Keys != 1 {
		t.Errorf("Stats() = %+v", s)
	}
	if s.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", s.HitRate())
	}

	c.Delete("k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get() after Delete should miss")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 10)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"))
	now = now.Add(30 * time.Second)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Error("entry expired early")
	}
	now = now.Add(time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestMemoryCache_Bounded(t *testing.T) {
	c := NewMemoryCache(time.Minute, 3)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"))
	}
	if got := c.Stats().Keys; got != 3 {
		t.Errorf("Keys = %d, want 3", got)
	}
	if _, ok := c.Get(ctx, "k9"); !ok {
		t.Error("most recent entry should be present")
	}

	c.Clear()
	if got := c.Stats().Keys; got != 0 {
		t.Errorf("Keys after Clear = %d", got)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestMemoryCache_Metrics(t *testing.T) {
	c := NewMemoryCache(time.Minute, 10)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues(BackendMemory))
	misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues(BackendMemory))

	c.Get(ctx, "a")
	c.Set(ctx, "a", []byte("1"))
	c.Get(ctx, "a")

	if d := testutil.ToFloat64(metrics.CacheHits.WithLabelValues(BackendMemory)) - hits; d != 1 {
		t.Errorf("hit delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues(BackendMemory)) - misses; d != 1 {
		t.Errorf("miss delta = %v, want 1", d)
	}
}

func TestKey(t *testing.T) {
	params := map[string]interface{}{"q": "shoes", "top_n": 5}

	a := Key("search", 3, params)
	if a != Key("search", 3, params) {
		t.Error("Key() is not deterministic")
	}
	if a == Key("search", 4, params) {
		t.Error("Key() must change with model version")
	}
	if a == Key("similar", 3, params) {
		t.Error("Key() must change with operation")
	}
	if a == Key("search", 3, map[string]interface{}{"q": "boots", "top_n": 5}) {
		t.Error("Key() must change with params")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"disabled ignores rest", func(c *Config) { c.Enabled = false; c.TTL = 0 }, false},
		{"redis", func(c *Config) { c.Backend = BackendRedis }, false},
		{"redis without addr", func(c *Config) { c.Backend = BackendRedis; c.RedisAddr = "" }, true},
		{"negative db", func(c *Config) { c.Backend = BackendRedis; c.RedisDB = -1 }, true},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, true},
		{"zero entries", func(c *Config) { c.MaxEntries = 0 }, true},
		{"unknown backend", func(c *Config) { c.Backend = "memcached" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(Nop); !ok {
		t.Errorf("disabled cache = %T, want Nop", c)
	}
	c.Set(context.Background(), "k", []byte("v"))
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Error("Nop should never hit")
	}

	c, err = New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("default cache = %T, want *MemoryCache", c)
	}

	bad := DefaultConfig()
	bad.Backend = "memcached"
	if _, err := New(bad); err == nil {
		t.Error("New() should reject invalid config")
	}
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client, time.Minute, "test:")
	defer func() { _ = c.Close() }()

	before := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues(BackendRedis))

	ctx := context.Background()
	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get() against an unreachable server should miss")
	}

	if d := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues(BackendRedis)) - before; d != 2 {
		t.Errorf("error delta = %v, want 2", d)
	}
}
