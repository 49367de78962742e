// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/recommend/storage"
)

var (
	// ErrEmptyCatalog is returned when training or loading finds no products.
	ErrEmptyCatalog = catalog.ErrEmptyCatalog

	// ErrMissingArtifact is returned when no complete artifact set is stored.
	ErrMissingArtifact = errors.New("no complete model artifact set")

	// ErrSchemaMismatch is returned when stored artifacts were written by an
	// incompatible build.
	ErrSchemaMismatch = storage.ErrSchemaMismatch

	// ErrNotReady is returned by serving operations before any model is published.
	ErrNotReady = errors.New("recommendation model not ready")

	// ErrTrainingInProgress is returned when Train is called while a run is active.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrNoDataProvider is returned when Train is called without a data source.
	ErrNoDataProvider = errors.New("data provider not set")
)

// FilterError reports a structurally invalid filter value.
type FilterError struct {
	Field string
	Value string
	Err   error
}

func (e *FilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}
