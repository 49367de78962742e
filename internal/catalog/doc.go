// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package catalog holds the marketplace product catalog and user interactions.
//
// The Catalog Store is an in-memory, row-ordered table of products that is
// read-only once constructed. Row order is significant: it is the order used
// for browse results, keyword results and stable tie-breaking in rankings.
//
// # Ingestion
//
// Products and interactions are exported by an upstream job as CSV or Parquet
// files. Loader reads them through an embedded DuckDB connection so both
// formats share one code path:
//
//	loader, err := catalog.NewLoader(":memory:")
//	products, cols, err := loader.LoadProducts(ctx, "data/products.csv")
//	interactions, err := loader.LoadInteractions(ctx, "data/interactions.csv")
//
// Missing text values become empty strings. Missing numeric values become NaN
// and are turned into JSON null only at the serialization boundary (ToRecords).
package catalog
