// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package config

import (
	"testing"
	"time"
)

func TestEngineConfig_DefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	ec := cfg.EngineConfig()
	if err := ec.Validate(); err != nil {
		t.Fatalf("EngineConfig().Validate() = %v", err)
	}
	if ec.Neighbors != 5 || ec.Seed != 42 || ec.TrainingTimeout != 30*time.Minute {
		t.Errorf("EngineConfig() = %+v", ec)
	}
}

func TestSubsystemConfigs(t *testing.T) {
	cfg := defaultConfig()
	cfg.Intent.APIKey = "k"
	cfg.Events.Backend = "nats"
	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisDB = 2
	cfg.Logging.Format = "console"

	if got := cfg.IntentConfig(); got.APIKey != "k" || got.HistoryTurns != 4 {
		t.Errorf("IntentConfig() = %+v", got)
	}

	ev := cfg.EventsConfig()
	if ev.Backend != "nats" || ev.Topic != "interactions.recorded" {
		t.Errorf("EventsConfig() = %+v", ev)
	}
	if err := ev.Validate(); err != nil {
		t.Errorf("EventsConfig().Validate() = %v", err)
	}

	cc := cfg.CacheConfig()
	if cc.Backend != "redis" || cc.RedisDB != 2 || cc.KeyPrefix == "" {
		t.Errorf("CacheConfig() = %+v", cc)
	}
	if err := cc.Validate(); err != nil {
		t.Errorf("CacheConfig().Validate() = %v", err)
	}

	if lc := cfg.LoggingConfig(); lc.Format != "console" || !lc.Timestamp {
		t.Errorf("LoggingConfig() = %+v", lc)
	}
}
