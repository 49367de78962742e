// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package storage

import (
	"encoding/gob"

	"github.com/tomtom215/shopwise/internal/catalog"
)

// Artifact names shared by every training run.
const (
	ArtifactCatalog       = "catalog"
	ArtifactContent       = "content"
	ArtifactCollaborative = "collaborative"
)

// CatalogState is the product snapshot a model set was trained on.
type CatalogState struct {
	Products []catalog.Product
	Columns  catalog.Columns
}

// SparseVectorState is a sparse row sorted by ascending term index.
type SparseVectorState struct {
	Indices []int32
	Values  []float64
}

// ContentModelState represents the serializable state of the content model.
type ContentModelState struct {
	// Vocabulary lists the retained terms; position is the term index.
	Vocabulary []string

	// IDF holds the inverse document frequency per term index.
	IDF []float64

	// Vectors holds one L2-normalized TF-IDF row per catalog product.
	Vectors []SparseVectorState

	// Similarity is the product-product cosine matrix. It is nil when the
	// catalog was too large to precompute it.
	Similarity [][]float32

	MaxFeatures int
}

// CollaborativeModelState represents the serializable state of the
// user-based collaborative model.
type CollaborativeModelState struct {
	// UserIDs is the row order of Matrix and Similarity.
	UserIDs []string

	// ProductIDs is the column order of Matrix.
	ProductIDs []string

	// Matrix is the dense user-item weight matrix.
	Matrix [][]float64

	// Similarity is the user-user cosine matrix.
	Similarity [][]float64

	Neighbors int
}

//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(CatalogState{})
	gob.Register(ContentModelState{})
	gob.Register(CollaborativeModelState{})
	gob.Register(SparseVectorState{})
	gob.Register(ModelMetadata{})
	gob.Register(storedFile{})
}
