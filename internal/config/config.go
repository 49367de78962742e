// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Intent    IntentConfig    `koanf:"intent"`
	Events    EventsConfig    `koanf:"events"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// CatalogConfig locates the training inputs.
//
// Environment Variables:
//   - PRODUCTS_PATH: product catalog file, CSV or Parquet (required)
//   - INTERACTIONS_PATH: optional interaction file merged with the interaction log
//   - DUCKDB_PATH: DuckDB database used for ingestion (default: in-memory)
type CatalogConfig struct {
	ProductsPath     string `koanf:"products_path"`
	InteractionsPath string `koanf:"interactions_path"`
	DuckDBPath       string `koanf:"duckdb_path"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - MODEL_PATH: artifact directory (default: ./models)
//   - TRAIN_ON_STARTUP: train when no artifact can be loaded (default: true)
//   - RECOMMEND_TRAIN_INTERVAL: periodic retrain interval, 0 disables (default: 0)
//   - RECOMMEND_NEIGHBORS: similar users per recommendation (default: 5)
//   - RECOMMEND_MAX_FEATURES: TF-IDF vocabulary cap (default: 5000)
type RecommendConfig struct {
	ModelPath      string        `koanf:"model_path"`
	TrainOnStartup bool          `koanf:"train_on_startup"`
	TrainInterval  time.Duration `koanf:"train_interval"`

	TrainingTimeout              time.Duration `koanf:"training_timeout"`
	Neighbors                    int           `koanf:"neighbors"`
	MaxFeatures                  int           `koanf:"max_features"`
	ContentSimilarityMaxProducts int           `koanf:"content_similarity_max_products"`
	NumWorkers                   int           `koanf:"num_workers"`
	Seed                         int64         `koanf:"seed"`
	DefaultN                     int           `koanf:"default_n"`
	MaxN                         int           `koanf:"max_n"`
	SearchDefaultN               int           `koanf:"search_default_n"`
	KeepVersions                 int           `koanf:"keep_versions"`
}

// IntentConfig holds the natural-language query parser settings.
// The parser is disabled when Enabled is false or APIKey is empty;
// smart search then treats the whole query as a search term.
//
// Environment Variables:
//   - INTENT_ENABLED (default: true)
//   - GROQ_API_KEY or INTENT_API_KEY: upstream API key
//   - INTENT_BASE_URL: OpenAI-compatible endpoint (default: Groq)
//   - INTENT_MODEL (default: llama-3.1-8b-instant)
type IntentConfig struct {
	Enabled                 bool          `koanf:"enabled"`
	APIKey                  string        `koanf:"api_key"`
	BaseURL                 string        `koanf:"base_url"`
	Model                   string        `koanf:"model"`
	Timeout                 time.Duration `koanf:"timeout"`
	HistoryTurns            int           `koanf:"history_turns"`
	RequestsPerSecond       float64       `koanf:"requests_per_second"`
	Burst                   int           `koanf:"burst"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
}

// EventsConfig holds interaction ingestion settings.
//
// Environment Variables:
//   - EVENTS_ENABLED (default: true)
//   - EVENTS_BACKEND: memory or nats (default: memory)
//   - NATS_URL (default: nats://127.0.0.1:4222)
//   - INTERACTION_STORE_PATH: Badger directory of the interaction log
type EventsConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Backend    string `koanf:"backend"`
	NATSURL    string `koanf:"nats_url"`
	Topic      string `koanf:"topic"`
	StorePath  string `koanf:"store_path"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// CacheConfig holds API result cache settings.
type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Backend       string        `koanf:"backend"` // memory or redis
	TTL           time.Duration `koanf:"ttl"`
	MaxEntries    int           `koanf:"max_entries"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration using Koanf v2 with layered sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
