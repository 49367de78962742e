// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"time"

	"github.com/tomtom215/shopwise/internal/catalog"
)

// Stage identifies which step of the search cascade produced a result.
type Stage string

const (
	// StageEmpty means no product passed the filters.
	StageEmpty Stage = "empty"

	// StageBrowse means no query was given; filtered rows in catalog order.
	StageBrowse Stage = "browse"

	// StageKeyword means the query matched title or description text.
	StageKeyword Stage = "keyword"

	// StageSemantic means the content model ranked the filtered rows.
	StageSemantic Stage = "semantic"

	// StageFilteredFallback means neither text stage matched and the
	// filtered rows were returned unranked.
	StageFilteredFallback Stage = "filtered_fallback"
)

// Fallback names a recovered condition in a recommendation result.
type Fallback string

const (
	// FallbackNone means the result is a normal model answer.
	FallbackNone Fallback = ""

	// FallbackColdStart means the user was unknown and the products are a
	// non-personalized random sample of the catalog.
	FallbackColdStart Fallback = "cold_start"

	// FallbackUnknownProduct means the product id was not in the catalog.
	FallbackUnknownProduct Fallback = "unknown_product"
)

// Filters constrains a search. Zero values are no-ops.
type Filters struct {
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Category string   `json:"category,omitempty"`
	Brand    string   `json:"brand,omitempty"`
}

// SearchRequest is the input of a hybrid search.
type SearchRequest struct {
	Query   string
	N       int
	Filters Filters
}

// Result is an ordered product list plus how it was produced.
type Result struct {
	Products     []catalog.Product
	Stage        Stage
	Fallback     Fallback
	ModelVersion int
}

// Status describes the published model and the trainer.
type Status struct {
	// Ready is true once a snapshot has been published.
	Ready bool `json:"ready"`

	// IsTraining indicates whether training is currently in progress.
	IsTraining bool `json:"is_training"`

	ModelVersion int       `json:"model_version"`
	TrainedAt    time.Time `json:"trained_at"`

	ProductCount     int `json:"product_count"`
	UserCount        int `json:"user_count"`
	InteractionCount int `json:"interaction_count"`
	VocabularySize   int `json:"vocabulary_size"`

	// ContentPrecomputed reports whether the product-product matrix is in memory.
	ContentPrecomputed bool `json:"content_precomputed"`

	// LastTrainingDurationMS is how long the last training took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastError contains the last training error, if any.
	LastError string `json:"last_error,omitempty"`
}
