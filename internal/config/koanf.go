// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shopwise/config.yaml",
	"/etc/shopwise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Catalog: CatalogConfig{
			ProductsPath: "./data/products.csv",
			DuckDBPath:   "", // in-memory
		},
		Recommend: RecommendConfig{
			ModelPath:                    "./models",
			TrainOnStartup:               true,
			TrainInterval:                0,
			TrainingTimeout:              30 * time.Minute,
			Neighbors:                    5,
			MaxFeatures:                  5000,
			ContentSimilarityMaxProducts: 5000,
			NumWorkers:                   4,
			Seed:                         42,
			DefaultN:                     10,
			MaxN:                         100,
			SearchDefaultN:               5,
			KeepVersions:                 3,
		},
		Intent: IntentConfig{
			Enabled:                 true,
			BaseURL:                 "https://api.groq.com/openai/v1",
			Model:                   "llama-3.1-8b-instant",
			Timeout:                 10 * time.Second,
			HistoryTurns:            4,
			RequestsPerSecond:       5,
			Burst:                   10,
			BreakerFailureThreshold: 5,
			BreakerTimeout:          30 * time.Second,
		},
		Events: EventsConfig{
			Enabled:    true,
			Backend:    "memory",
			NATSURL:    "nats://127.0.0.1:4222",
			Topic:      "interactions.recorded",
			StorePath:  "./data/interactions",
			SyncWrites: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Backend:    "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			RedisAddr:  "localhost:6379",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration from three layers, highest priority last:
//
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars always arrive as strings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"port":             "server.port",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"products_path":     "catalog.products_path",
	"interactions_path": "catalog.interactions_path",
	"duckdb_path":       "catalog.duckdb_path",

	"model_path":                                "recommend.model_path",
	"train_on_startup":                          "recommend.train_on_startup",
	"recommend_train_interval":                  "recommend.train_interval",
	"recommend_training_timeout":                "recommend.training_timeout",
	"recommend_neighbors":                       "recommend.neighbors",
	"recommend_max_features":                    "recommend.max_features",
	"recommend_content_similarity_max_products": "recommend.content_similarity_max_products",
	"recommend_num_workers":                     "recommend.num_workers",
	"recommend_seed":                            "recommend.seed",
	"recommend_default_n":                       "recommend.default_n",
	"recommend_max_n":                           "recommend.max_n",
	"recommend_search_default_n":                "recommend.search_default_n",
	"recommend_keep_versions":                   "recommend.keep_versions",

	"intent_enabled":                   "intent.enabled",
	"groq_api_key":                     "intent.api_key",
	"intent_api_key":                   "intent.api_key",
	"intent_base_url":                  "intent.base_url",
	"intent_model":                     "intent.model",
	"intent_timeout":                   "intent.timeout",
	"intent_history_turns":             "intent.history_turns",
	"intent_requests_per_second":       "intent.requests_per_second",
	"intent_burst":                     "intent.burst",
	"intent_breaker_failure_threshold": "intent.breaker_failure_threshold",
	"intent_breaker_timeout":           "intent.breaker_timeout",

	"events_enabled":          "events.enabled",
	"events_backend":          "events.backend",
	"nats_url":                "events.nats_url",
	"events_topic":            "events.topic",
	"interaction_store_path":  "events.store_path",
	"interaction_sync_writes": "events.sync_writes",

	"cache_enabled":     "cache.enabled",
	"cache_backend":     "cache.backend",
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",
	"redis_addr":        "cache.redis_addr",
	"redis_password":    "cache.redis_password",
	"redis_db":          "cache.redis_db",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - PRODUCTS_PATH -> catalog.products_path
//   - GROQ_API_KEY -> intent.api_key
//   - REDIS_ADDR -> cache.redis_addr
//
// Unmapped variables return "" and are skipped so unrelated environment
// does not pollute the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
