// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateCatalog,
		c.validateRecommend,
		c.validateIntent,
		c.validateEvents,
		c.validateCache,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.ProductsPath) == "" {
		return fmt.Errorf("catalog.products_path is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.ModelPath == "" {
		return fmt.Errorf("recommend.model_path is required")
	}
	if r.TrainInterval < 0 {
		return fmt.Errorf("recommend.train_interval must not be negative, got %v", r.TrainInterval)
	}
	if r.TrainInterval > 0 && r.TrainInterval < time.Minute {
		return fmt.Errorf("recommend.train_interval must be at least 1m, got %v", r.TrainInterval)
	}
	// Remaining bounds are checked by recommend.Config.Validate.
	if r.Neighbors < 1 {
		return fmt.Errorf("recommend.neighbors must be positive, got %d", r.Neighbors)
	}
	return nil
}

func (c *Config) validateIntent() error {
	in := &c.Intent
	if !in.Enabled {
		return nil
	}
	if in.BaseURL != "" {
		u, err := url.Parse(in.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("intent.base_url must be an http(s) URL, got %q", in.BaseURL)
		}
	}
	if in.Timeout < 0 {
		return fmt.Errorf("intent.timeout must not be negative, got %v", in.Timeout)
	}
	if in.HistoryTurns < 0 {
		return fmt.Errorf("intent.history_turns must not be negative, got %d", in.HistoryTurns)
	}
	if in.RequestsPerSecond < 0 {
		return fmt.Errorf("intent.requests_per_second must not be negative, got %v", in.RequestsPerSecond)
	}
	return nil
}

func (c *Config) validateEvents() error {
	e := &c.Events
	if !e.Enabled {
		return nil
	}
	switch e.Backend {
	case "memory":
	case "nats":
		u, err := url.Parse(e.NATSURL)
		if err != nil || u.Scheme != "nats" || u.Host == "" {
			return fmt.Errorf("events.nats_url must be a nats:// URL, got %q", e.NATSURL)
		}
	default:
		return fmt.Errorf("events.backend must be memory or nats, got %q", e.Backend)
	}
	if e.Topic == "" {
		return fmt.Errorf("events.topic is required")
	}
	return nil
}

func (c *Config) validateCache() error {
	ch := &c.Cache
	if !ch.Enabled {
		return nil
	}
	switch ch.Backend {
	case "memory":
		if ch.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", ch.MaxEntries)
		}
	case "redis":
		if ch.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be memory or redis, got %q", ch.Backend)
	}
	if ch.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", ch.TTL)
	}
	return nil
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("security.rate_limit_reqs must be between %d and %d, got %d",
			minRateLimitRequests, maxRateLimitRequests, c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("security.rate_limit_window must be between %v and %v, got %v",
			minRateLimitWindow, maxRateLimitWindow, c.Security.RateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
