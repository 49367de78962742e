// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

//go:build integration

package testinfra

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultRedisImage is the Redis image used by the result cache tests.
	DefaultRedisImage = "redis:7-alpine"

	redisPort = "6379/tcp"
)

// RedisContainer is a running Redis server.
type RedisContainer struct {
	testcontainers.Container

	// Addr is host:port for redis.Options.Addr.
	Addr string
}

// ContainerOption configures a container before it starts.
type ContainerOption func(*containerConfig)

type containerConfig struct {
	image        string
	startTimeout time.Duration
}

// WithImage overrides the container image.
func WithImage(image string) ContainerOption {
	return func(c *containerConfig) {
		c.image = image
	}
}

// WithStartTimeout sets how long to wait for the container to become ready.
func WithStartTimeout(timeout time.Duration) ContainerOption {
	return func(c *containerConfig) {
		c.startTimeout = timeout
	}
}

func applyOptions(image string, opts []ContainerOption) *containerConfig {
	cfg := &containerConfig{image: image, startTimeout: 60 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewRedisContainer starts a Redis server and waits until it accepts
// connections.
//
//	redis, err := testinfra.NewRedisContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, redis)
func NewRedisContainer(ctx context.Context, opts ...ContainerOption) (*RedisContainer, error) {
	cfg := applyOptions(DefaultRedisImage, opts)

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{redisPort},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(redisPort),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, addr, err := startContainer(ctx, req, redisPort)
	if err != nil {
		return nil, err
	}
	return &RedisContainer{Container: container, Addr: addr}, nil
}
