// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package storage persists trained model artifacts.
//
// Each training run writes three artifacts under the same version number:
// the catalog snapshot, the content model and the collaborative model.
// Artifacts are gob-encoded, gzip-compressed and checksummed with SHA-256.
//
// # Storage Format
//
//	filename: {artifact}_v{version}.gob.gz
//
//	structure:
//	  - Metadata (ModelMetadata, including SchemaVersion)
//	  - CompressedData (gzip-compressed gob-encoded state)
//
// # Schema Versions
//
// Every artifact records the SchemaVersion it was written with. Load refuses
// an artifact from a different schema with ErrSchemaMismatch, so a process
// never serves from matrices it cannot interpret.
//
// # Atomic Publish
//
// Save writes to a hidden temporary file in the same directory and renames it
// into place. LatestComplete returns the newest version for which all
// artifacts exist, which skips a run that crashed halfway.
//
//	store, err := storage.NewStore("/data/models")
//	version, ok := store.LatestComplete(storage.ArtifactCatalog, storage.ArtifactContent, storage.ArtifactCollaborative)
//
//	var state storage.ContentModelState
//	meta, err := store.Load(ctx, storage.ArtifactContent, version, &state)
//
// # Directory Structure
//
//	/data/models/
//	  catalog_v3.gob.gz
//	  content_v3.gob.gz
//	  collaborative_v3.gob.gz   <- latest complete set
//	  catalog_v2.gob.gz
//	  ...
//
// Prune keeps the newest N versions of an artifact.
package storage
