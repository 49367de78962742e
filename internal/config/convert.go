// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package config

import (
	"github.com/tomtom215/shopwise/internal/cache"
	"github.com/tomtom215/shopwise/internal/eventprocessor"
	"github.com/tomtom215/shopwise/internal/intent"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
)

// EngineConfig returns the recommendation engine settings.
func (c *Config) EngineConfig() *recommend.Config {
	r := &c.Recommend
	return &recommend.Config{
		Neighbors:                    r.Neighbors,
		MaxFeatures:                  r.MaxFeatures,
		ContentSimilarityMaxProducts: r.ContentSimilarityMaxProducts,
		NumWorkers:                   r.NumWorkers,
		Seed:                         r.Seed,
		DefaultN:                     r.DefaultN,
		MaxN:                         r.MaxN,
		SearchDefaultN:               r.SearchDefaultN,
		TrainingTimeout:              r.TrainingTimeout,
		KeepVersions:                 r.KeepVersions,
	}
}

// IntentConfig returns the query parser settings.
func (c *Config) IntentConfig() intent.Config {
	in := &c.Intent
	return intent.Config{
		APIKey:                  in.APIKey,
		BaseURL:                 in.BaseURL,
		Model:                   in.Model,
		Timeout:                 in.Timeout,
		HistoryTurns:            in.HistoryTurns,
		RequestsPerSecond:       in.RequestsPerSecond,
		Burst:                   in.Burst,
		BreakerFailureThreshold: in.BreakerFailureThreshold,
		BreakerTimeout:          in.BreakerTimeout,
	}
}

// EventsConfig returns the interaction ingestion settings on top of the
// package defaults for publisher, subscriber and router tuning.
func (c *Config) EventsConfig() eventprocessor.Config {
	out := eventprocessor.DefaultConfig()
	out.Backend = c.Events.Backend
	out.NATSURL = c.Events.NATSURL
	out.Topic = c.Events.Topic
	out.StorePath = c.Events.StorePath
	out.SyncWrites = c.Events.SyncWrites
	return out
}

// CacheConfig returns the result cache settings.
func (c *Config) CacheConfig() cache.Config {
	out := cache.DefaultConfig()
	out.Enabled = c.Cache.Enabled
	out.Backend = c.Cache.Backend
	out.TTL = c.Cache.TTL
	out.MaxEntries = c.Cache.MaxEntries
	out.RedisAddr = c.Cache.RedisAddr
	out.RedisPassword = c.Cache.RedisPassword
	out.RedisDB = c.Cache.RedisDB
	return out
}

// LoggingConfig returns the zerolog settings.
func (c *Config) LoggingConfig() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Logging.Level
	out.Format = c.Logging.Format
	out.Caller = c.Logging.Caller
	return out
}
