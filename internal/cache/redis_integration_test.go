// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/shopwise/internal/testinfra"
)

func TestRedisCache_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	redis, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, redis)

	cfg := DefaultConfig()
	cfg.Backend = BackendRedis
	cfg.RedisAddr = redis.Addr
	cfg.TTL = time.Second

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	key := Key("similar", 1, map[string]interface{}{"product_id": "p1", "n": 5})
	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("Get() hit on an empty cache")
	}

	c.Set(ctx, key, []byte(`{"products":[]}`))
	got, ok := c.Get(ctx, key)
	if !ok || string(got) != `{"products":[]}` {
		t.Fatalf("Get() = %q, %v", got, ok)
	}

	// A second client with the same prefix sees the entry.
	other, err := NewRedisCache(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = other.Close() }()
	if _, ok := other.Get(ctx, key); !ok {
		t.Error("entry not shared between clients")
	}

	time.Sleep(1500 * time.Millisecond)
	if _, ok := c.Get(ctx, key); ok {
		t.Error("entry survived its TTL")
	}
}
