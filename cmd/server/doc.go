// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package main is the entry point for the Shopwise server.

Shopwise serves hybrid product recommendations and search over a product
catalog: TF-IDF content similarity, user-based collaborative filtering and
a keyword/semantic search cascade, with an optional language model that
turns free-text queries into structured filters.

# Application Architecture

The server runs under a Suture v4 supervision tree:

	RootSupervisor ("shopwise")
	├── IngestSupervisor ("ingest-layer")
	│   └── Interaction router (Watermill, in-memory or NATS)
	├── TrainingSupervisor ("training-layer")
	│   └── Periodic trainer (RECOMMEND_TRAIN_INTERVAL)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON/console output modes
 3. Catalog loader: DuckDB reads CSV or Parquet inputs
 4. Interaction log: Badger store fed by the ingestion router
 5. Engine: restore the newest artifact set, or train when none exists
 6. Result cache, intent parser and interaction publisher
 7. Supervisor tree and HTTP server

A schema mismatch in stored artifacts stops startup. Delete the model
directory or run cmd/train to rebuild.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests, the router closes its subscriptions, and the
interaction log is flushed before exit.

# Example Usage

	export PRODUCTS_PATH=./data/products.csv
	export INTERACTIONS_PATH=./data/orders.csv
	export GROQ_API_KEY=your-key   # optional, enables smart search parsing
	./shopwise-server
*/
package main
