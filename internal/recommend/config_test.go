// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Neighbors != 5 {
		t.Errorf("Neighbors = %d, want 5", cfg.Neighbors)
	}
	if cfg.SearchDefaultN != 5 || cfg.DefaultN != 10 {
		t.Errorf("defaults n = %d/%d, want 5/10", cfg.SearchDefaultN, cfg.DefaultN)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero neighbors", func(c *Config) { c.Neighbors = 0 }},
		{"zero max features", func(c *Config) { c.MaxFeatures = 0 }},
		{"negative precompute limit", func(c *Config) { c.ContentSimilarityMaxProducts = -1 }},
		{"zero workers", func(c *Config) { c.NumWorkers = 0 }},
		{"zero default n", func(c *Config) { c.DefaultN = 0 }},
		{"zero search default n", func(c *Config) { c.SearchDefaultN = 0 }},
		{"max below default", func(c *Config) { c.MaxN = 3 }},
		{"zero timeout", func(c *Config) { c.TrainingTimeout = 0 }},
		{"zero keep versions", func(c *Config) { c.KeepVersions = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	t.Run("precompute disabled is valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ContentSimilarityMaxProducts = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Neighbors = 50
	clone.TrainingTimeout = time.Second

	if cfg.Neighbors != 5 || cfg.TrainingTimeout != 30*time.Minute {
		t.Error("Clone() shares state with the original")
	}
}

func TestConfig_ClampN(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		n, fallback, want int
	}{
		{0, 10, 10},
		{-3, 5, 5},
		{7, 10, 7},
		{1000, 10, 100},
	}
	for _, tt := range tests {
		if got := cfg.clampN(tt.n, tt.fallback); got != tt.want {
			t.Errorf("clampN(%d, %d) = %d, want %d", tt.n, tt.fallback, got, tt.want)
		}
	}
}
