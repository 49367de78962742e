// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"fmt"
	"time"
)

// Message bus backends.
const (
	BackendMemory = "memory"
	BackendNATS   = "nats"
)

// Config holds the interaction ingestion settings.
type Config struct {
	// Backend selects the message bus: "memory" (Watermill GoChannel) or "nats".
	Backend string

	// NATSURL is the broker address when Backend is "nats".
	NATSURL string

	// Topic is the subject interactions are published on.
	Topic string

	// StorePath is the Badger directory of the interaction log.
	// Empty means an in-memory log.
	StorePath string

	// SyncWrites fsyncs every interaction log write.
	SyncWrites bool

	Publisher      PublisherConfig
	Subscriber     SubscriberConfig
	Router         RouterConfig
	CircuitBreaker CircuitBreakerConfig
}

// DefaultConfig returns production defaults with the in-memory bus.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendMemory,
		NATSURL:        "nats://127.0.0.1:4222",
		Topic:          DefaultTopic,
		StorePath:      "./data/interactions",
		SyncWrites:     true,
		Publisher:      DefaultPublisherConfig(),
		Subscriber:     DefaultSubscriberConfig(),
		Router:         DefaultRouterConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig("interaction-publisher"),
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // hugeParam: Config is copied on purpose
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendNATS:
		if c.NATSURL == "" {
			return fmt.Errorf("%w: events.nats_url is required for the nats backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: events.backend must be memory or nats, got %q", ErrInvalidConfig, c.Backend)
	}
	if c.Topic == "" {
		return fmt.Errorf("%w: events.topic is required", ErrInvalidConfig)
	}
	return nil
}

// PublisherConfig holds NATS publisher settings.
type PublisherConfig struct {
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool // nolint:revive // ID is correct per Go conventions
}

// DefaultPublisherConfig returns production defaults for the publisher.
func DefaultPublisherConfig() PublisherConfig {
	return PublisherConfig{
		MaxReconnects:    -1, // Unlimited
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024, // 8MB
		EnableTrackMsgID: true,
	}
}

// SubscriberConfig holds NATS subscriber settings.
type SubscriberConfig struct {
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	MaxAckPending    int
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration
}

// DefaultSubscriberConfig returns production defaults for the subscriber.
func DefaultSubscriberConfig() SubscriberConfig {
	return SubscriberConfig{
		DurableName:      "interaction-log",
		QueueGroup:       "interaction-loggers",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		MaxDeliver:       5,
		MaxAckPending:    1000,
		CloseTimeout:     30 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}
