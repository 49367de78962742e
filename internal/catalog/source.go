// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// InteractionSource supplies interactions recorded outside the training
// files, such as the ingestion log.
type InteractionSource interface {
	Interactions(ctx context.Context) ([]Interaction, error)
}

// Source reads the training inputs through a Loader. It satisfies the
// engine's data provider contract.
type Source struct {
	loader           *Loader
	productsPath     string
	interactionsPath string
	extra            []InteractionSource
	logger           zerolog.Logger
}

// NewSource creates a Source. interactionsPath may be empty; extra sources
// are appended after the file interactions in the order given.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSource(loader *Loader, productsPath, interactionsPath string, logger zerolog.Logger, extra ...InteractionSource) *Source {
	return &Source{
		loader:           loader,
		productsPath:     productsPath,
		interactionsPath: interactionsPath,
		extra:            extra,
		logger:           logger.With().Str("component", "catalog-source").Logger(),
	}
}

// LoadProducts reads the product file.
func (s *Source) LoadProducts(ctx context.Context) ([]Product, Columns, error) {
	return s.loader.LoadProducts(ctx, s.productsPath)
}

// LoadInteractions merges the interaction file with every extra source.
// A failing source is skipped with a warning; an error is returned only
// when no source could be read.
func (s *Source) LoadInteractions(ctx context.Context) ([]Interaction, error) {
	var (
		merged []Interaction
		errs   []error
		read   int
	)

	fromFile, err := s.loader.LoadInteractions(ctx, s.interactionsPath)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.interactionsPath).Msg("interaction file unreadable")
		errs = append(errs, fmt.Errorf("interaction file: %w", err))
	} else {
		merged = append(merged, fromFile...)
		read++
	}

	for i, src := range s.extra {
		got, err := src.Interactions(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Int("source", i).Msg("interaction source unreadable")
			errs = append(errs, fmt.Errorf("interaction source %d: %w", i, err))
			continue
		}
		merged = append(merged, got...)
		read++
	}

	if read == 0 {
		return nil, errors.Join(errs...)
	}

	s.logger.Debug().
		Int("from_file", len(fromFile)).
		Int("total", len(merged)).
		Msg("interactions loaded")
	return merged, nil
}
