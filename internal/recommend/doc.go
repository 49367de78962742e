// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package recommend implements the hybrid product recommendation and search
// engine.
//
// # Architecture
//
// A Snapshot bundles the catalog with the two models built over it:
//
//   - Content Similarity Model: TF-IDF over product text
//   - Collaborative Model: user-based filtering over interactions
//
// The Engine serves every request from the currently published Snapshot and
// replaces it wholesale after each training run. Snapshots are never
// mutated, so readers need no locks.
//
// # Operations
//
//   - RecommendForUser: neighbour-weighted scores for known users; a
//     non-personalized sample for cold-start users
//   - SimilarProducts: content neighbours of a product, excluding itself
//   - Search: filter, then keyword match, then semantic ranking restricted
//     to the filtered rows, then the filtered rows themselves
//
// "No results" is never an error. Only ErrNotReady (nothing published yet)
// and malformed filter values (*FilterError from ParseFilters) reach callers.
//
// # Training
//
//	engine, err := recommend.NewEngine(cfg, logger)
//	engine.SetDataProvider(provider)
//	engine.SetStore(store)
//
//	if err := engine.LoadLatest(ctx); errors.Is(err, recommend.ErrMissingArtifact) {
//	    err = engine.Train(ctx)
//	}
//
// Train is single-flight: a second concurrent call returns
// ErrTrainingInProgress. Artifacts are written under a new version before
// the snapshot is published.
//
// # Known Behaviour
//
// When the keyword stage finds between 1 and n-1 matches it returns only
// those, without topping up from the semantic stage.
package recommend
