// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/shopwise/internal/config"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
	"github.com/tomtom215/shopwise/internal/recommend/storage"
)

// initEngine creates the engine and publishes its first snapshot. Stored
// artifacts win; training runs only when none exist and TRAIN_ON_STARTUP
// is set. Without either the server starts unready and answers 503 until
// a training run succeeds.
func initEngine(ctx context.Context, cfg *config.Config, dp recommend.DataProvider) (*recommend.Engine, error) {
	logger := logging.WithComponent("recommend")

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetDataProvider(dp)

	store, err := storage.NewStore(cfg.Recommend.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}
	engine.SetStore(store)

	err = engine.LoadLatest(ctx)
	switch {
	case err == nil:
		status := engine.Status()
		logger.Info().
			Int("version", status.ModelVersion).
			Int("products", status.ProductCount).
			Int("users", status.UserCount).
			Msg("restored model artifacts")
		return engine, nil

	case errors.Is(err, recommend.ErrSchemaMismatch):
		return nil, fmt.Errorf("stored artifacts are incompatible, retrain with cmd/train: %w", err)

	case errors.Is(err, recommend.ErrMissingArtifact):
		if !cfg.Recommend.TrainOnStartup {
			logger.Warn().Msg("no model artifacts and TRAIN_ON_STARTUP=false, serving 503 until trained")
			return engine, nil
		}

	default:
		if !cfg.Recommend.TrainOnStartup {
			return nil, fmt.Errorf("load artifacts: %w", err)
		}
		logger.Warn().Err(err).Msg("stored artifacts unreadable, retraining")
	}

	logger.Info().Str("products_path", cfg.Catalog.ProductsPath).Msg("training initial model")
	if err := engine.Train(ctx); err != nil {
		return nil, fmt.Errorf("initial training: %w", err)
	}
	return engine, nil
}
