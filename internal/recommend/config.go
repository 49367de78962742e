// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/shopwise/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Neighbors is the number of most similar users blended per recommendation.
	// Default: 5.
	Neighbors int `json:"neighbors"`

	// MaxFeatures caps the TF-IDF vocabulary.
	// Default: 5000.
	MaxFeatures int `json:"max_features"`

	// ContentSimilarityMaxProducts is the catalog size below which the full
	// product-product similarity matrix is precomputed.
	// Default: 5000.
	ContentSimilarityMaxProducts int `json:"content_similarity_max_products"`

	// NumWorkers is the number of goroutines used for matrix construction.
	// Default: 4.
	NumWorkers int `json:"num_workers"`

	// Seed drives the cold-start sampler.
	// Default: 42.
	Seed int64 `json:"seed"`

	// DefaultN is the number of recommendations returned when none is requested.
	// Default: 10.
	DefaultN int `json:"default_n"`

	// MaxN is the largest n a caller may request.
	// Default: 100.
	MaxN int `json:"max_n"`

	// SearchDefaultN is the number of search results returned when none is requested.
	// Default: 5.
	SearchDefaultN int `json:"search_default_n"`

	// TrainingTimeout bounds a single training run.
	// Default: 30m.
	TrainingTimeout time.Duration `json:"training_timeout"`

	// KeepVersions is the number of artifact versions kept on disk.
	// Default: 3.
	KeepVersions int `json:"keep_versions"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Neighbors:                    5,
		MaxFeatures:                  5000,
		ContentSimilarityMaxProducts: 5000,
		NumWorkers:                   4,
		Seed:                         42,
		DefaultN:                     10,
		MaxN:                         100,
		SearchDefaultN:               5,
		TrainingTimeout:              30 * time.Minute,
		KeepVersions:                 3,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Neighbors < 1 {
		return fmt.Errorf("recommend.neighbors must be positive, got %d", c.Neighbors)
	}
	if c.MaxFeatures < 1 {
		return fmt.Errorf("recommend.max_features must be positive, got %d", c.MaxFeatures)
	}
	if c.ContentSimilarityMaxProducts < 0 {
		return fmt.Errorf("recommend.content_similarity_max_products must be non-negative, got %d", c.ContentSimilarityMaxProducts)
	}
	if c.NumWorkers < 1 {
		return fmt.Errorf("recommend.num_workers must be positive, got %d", c.NumWorkers)
	}
	if c.DefaultN < 1 {
		return fmt.Errorf("recommend.default_n must be positive, got %d", c.DefaultN)
	}
	if c.SearchDefaultN < 1 {
		return fmt.Errorf("recommend.search_default_n must be positive, got %d", c.SearchDefaultN)
	}
	if c.MaxN < c.DefaultN || c.MaxN < c.SearchDefaultN {
		return fmt.Errorf("recommend.max_n must be >= default_n and search_default_n, got %d", c.MaxN)
	}
	if c.TrainingTimeout <= 0 {
		return fmt.Errorf("recommend.training_timeout must be positive, got %v", c.TrainingTimeout)
	}
	if c.KeepVersions < 1 {
		return fmt.Errorf("recommend.keep_versions must be positive, got %d", c.KeepVersions)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

func (c *Config) contentConfig() algorithms.ContentConfig {
	return algorithms.ContentConfig{
		MaxFeatures:     c.MaxFeatures,
		PrecomputeLimit: c.ContentSimilarityMaxProducts,
		NumWorkers:      c.NumWorkers,
	}
}

func (c *Config) collaborativeConfig() algorithms.CollaborativeConfig {
	return algorithms.CollaborativeConfig{
		Neighbors:  c.Neighbors,
		NumWorkers: c.NumWorkers,
	}
}

// clampN resolves a requested result count against the defaults and limits.
func (c *Config) clampN(n, fallback int) int {
	if n <= 0 {
		n = fallback
	}
	if n > c.MaxN {
		n = c.MaxN
	}
	return n
}
