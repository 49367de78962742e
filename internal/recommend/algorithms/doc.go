// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package algorithms implements the two similarity models behind the
// recommendation engine.
//
// # Content Similarity Model
//
// ContentModel builds a TF-IDF feature space over one text document per
// catalog row (title, description, category identifiers, brand and seller).
// Vectors are L2-normalized, so cosine similarity is a sparse dot product.
//
//   - SimilarProducts ranks every other row against a product row.
//   - SearchByVector projects a free-text query into the same space and
//     drops rows with similarity <= 0.
//
// For catalogs below ContentConfig.PrecomputeLimit the full product-product
// matrix is computed at training time; larger catalogs compute single rows
// on demand.
//
// # Collaborative Model
//
// CollaborativeModel pivots interactions into a dense user-item matrix,
// computes user-user cosine similarity and scores unseen products by a
// similarity-weighted sum over the nearest other users.
//
// Unknown users are cold starts; ColdStartSample supplies a deterministic,
// non-personalized sample of catalog rows for them.
//
// # Thread Safety
//
// Both models are immutable once built and may be shared across goroutines
// without locking. Training builds a fresh model; it never mutates one that
// is being served.
//
// # Persistence
//
// Each model converts to and from its storage state type
// (storage.ContentModelState, storage.CollaborativeModelState).
package algorithms
