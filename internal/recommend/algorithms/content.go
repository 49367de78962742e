// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/shopwise/internal/recommend/storage"
)

// ContentConfig contains configuration for the content similarity model.
type ContentConfig struct {
	// MaxFeatures caps the vocabulary size.
	MaxFeatures int

	// PrecomputeLimit is the catalog size below which the full
	// product-product similarity matrix is built at training time.
	// Larger catalogs compute similarity rows on demand.
	PrecomputeLimit int

	// NumWorkers is the number of parallel workers.
	NumWorkers int
}

// DefaultContentConfig returns default content model configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		MaxFeatures:     5000,
		PrecomputeLimit: 5000,
		NumWorkers:      4,
	}
}

// ContentModel ranks catalog rows by TF-IDF cosine similarity.
// It is immutable after construction and safe for concurrent use.
type ContentModel struct {
	vectorizer  *Vectorizer
	vectors     []SparseVector
	similarity  [][]float32
	maxFeatures int
}

// BuildContentModel fits the feature space over one document per catalog row.
func BuildContentModel(ctx context.Context, docs []string, cfg ContentConfig) (*ContentModel, error) {
	if len(docs) == 0 {
		return nil, errors.New("content model: no documents")
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 5000
	}

	m := &ContentModel{
		vectorizer:  FitVectorizer(docs, cfg.MaxFeatures),
		vectors:     make([]SparseVector, len(docs)),
		maxFeatures: cfg.MaxFeatures,
	}

	if err := parallelRows(ctx, len(docs), cfg.NumWorkers, func(row int) {
		m.vectors[row] = m.vectorizer.Transform(docs[row])
	}); err != nil {
		return nil, err
	}

	if len(docs) < cfg.PrecomputeLimit {
		sim := make([][]float32, len(docs))
		if err := parallelRows(ctx, len(docs), cfg.NumWorkers, func(row int) {
			sim[row] = m.similarityRow(row)
		}); err != nil {
			return nil, err
		}
		m.similarity = sim
	}

	return m, nil
}

// ContentModelFromState restores a model saved with State.
//
//nolint:gocritic // state is decoded by value from storage
func ContentModelFromState(state storage.ContentModelState) (*ContentModel, error) {
	if len(state.Vocabulary) != len(state.IDF) {
		return nil, fmt.Errorf("content model: vocabulary has %d terms but %d idf weights",
			len(state.Vocabulary), len(state.IDF))
	}
	if state.Similarity != nil && len(state.Similarity) != len(state.Vectors) {
		return nil, fmt.Errorf("content model: similarity has %d rows for %d vectors",
			len(state.Similarity), len(state.Vectors))
	}

	vectors := make([]SparseVector, len(state.Vectors))
	for i, v := range state.Vectors {
		vectors[i] = SparseVector{Indices: v.Indices, Values: v.Values}
	}

	return &ContentModel{
		vectorizer:  NewVectorizerFromState(state.Vocabulary, state.IDF),
		vectors:     vectors,
		similarity:  state.Similarity,
		maxFeatures: state.MaxFeatures,
	}, nil
}

// State returns the serializable form of the model.
func (m *ContentModel) State() storage.ContentModelState {
	vectors := make([]storage.SparseVectorState, len(m.vectors))
	for i, v := range m.vectors {
		vectors[i] = storage.SparseVectorState{Indices: v.Indices, Values: v.Values}
	}
	return storage.ContentModelState{
		Vocabulary:  m.vectorizer.Terms(),
		IDF:         m.vectorizer.IDF(),
		Vectors:     vectors,
		Similarity:  m.similarity,
		MaxFeatures: m.maxFeatures,
	}
}

// Len returns the number of rows in the feature space.
func (m *ContentModel) Len() int {
	return len(m.vectors)
}

// VocabularySize returns the number of retained terms.
func (m *ContentModel) VocabularySize() int {
	return len(m.vectorizer.Terms())
}

// Precomputed reports whether the product-product matrix is held in memory.
func (m *ContentModel) Precomputed() bool {
	return m.similarity != nil
}

// SimilarProducts returns up to n rows most similar to row, excluding row
// itself. Zero-similarity rows are kept at the tail of the ranking. An
// out-of-range row yields an empty result.
func (m *ContentModel) SimilarProducts(row, n int) []Scored {
	if row < 0 || row >= len(m.vectors) || n <= 0 {
		return []Scored{}
	}

	var sims []float32
	if m.similarity != nil {
		sims = m.similarity[row]
	} else {
		sims = m.similarityRow(row)
	}

	ranked := make([]Scored, 0, len(sims)-1)
	for i, s := range sims {
		if i == row {
			continue
		}
		ranked = append(ranked, Scored{Row: i, Score: float64(s)})
	}
	sortScored(ranked)

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RankQuery returns every row with strictly positive similarity to query,
// ordered by descending similarity.
func (m *ContentModel) RankQuery(query string) []Scored {
	qv := m.vectorizer.Transform(query)
	if qv.IsZero() {
		return []Scored{}
	}

	ranked := make([]Scored, 0)
	for i := range m.vectors {
		s := clampUnit(qv.Dot(m.vectors[i]))
		if s <= 0 {
			continue
		}
		ranked = append(ranked, Scored{Row: i, Score: s})
	}
	sortScored(ranked)
	return ranked
}

// SearchByVector returns the top n rows for a free-text query. Rows with
// similarity <= 0 are never returned; no overlap yields an empty result.
func (m *ContentModel) SearchByVector(query string, n int) []Scored {
	if n <= 0 {
		return []Scored{}
	}
	ranked := m.RankQuery(query)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (m *ContentModel) similarityRow(row int) []float32 {
	out := make([]float32, len(m.vectors))
	v := m.vectors[row]
	for i := range m.vectors {
		out[i] = float32(clampUnit(v.Dot(m.vectors[i])))
	}
	return out
}
