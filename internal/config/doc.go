// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package config provides centralized configuration management for Shopwise.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

  - Built-in defaults (defaultConfig)
  - An optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/shopwise/config.yaml
  - Environment variables listed in envMappings

Environment variables that are not in the mapping table are ignored.

# Sections

  - server: HTTP listener (HTTP_HOST, HTTP_PORT, SERVER_TIMEOUT)
  - catalog: training inputs (PRODUCTS_PATH, INTERACTIONS_PATH, DUCKDB_PATH)
  - recommend: engine tuning and artifact storage (MODEL_PATH, RECOMMEND_*)
  - intent: natural-language query parser (GROQ_API_KEY, INTENT_*)
  - events: interaction ingestion (EVENTS_BACKEND, NATS_URL, INTERACTION_STORE_PATH)
  - cache: API result cache (CACHE_BACKEND, CACHE_TTL, REDIS_ADDR)
  - security: CORS and rate limiting (CORS_ORIGINS, RATE_LIMIT_REQUESTS)
  - logging: zerolog output (LOG_LEVEL, LOG_FORMAT, LOG_CALLER)

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validate reports the first invalid field with its configuration path, for
example "recommend.neighbors must be positive, got 0".
*/
package config
