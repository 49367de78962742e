// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package main runs one training pass: it loads the catalog and
// interactions, builds both models, writes a new versioned artifact set
// and exits. A running server picks the new version up on its next start.
//
//	shopwise-train --products ./data/products.csv --interactions ./data/orders.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/config"
	"github.com/tomtom215/shopwise/internal/eventprocessor"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
	"github.com/tomtom215/shopwise/internal/recommend/storage"
)

type options struct {
	products     string
	interactions string
	modelPath    string
	logPath      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "shopwise-train",
		Short:        "Train the recommendation models and write a new artifact version",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// A missing .env file is fine.
			_ = godotenv.Load()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.products, "products", "", "product catalog file, CSV or Parquet (overrides PRODUCTS_PATH)")
	f.StringVar(&opts.interactions, "interactions", "", "interaction file (overrides INTERACTIONS_PATH)")
	f.StringVar(&opts.modelPath, "model-path", "", "artifact directory (overrides MODEL_PATH)")
	f.StringVar(&opts.logPath, "interaction-log", "", "Badger interaction log to merge; the server must not hold it open")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	applyOverrides(cfg, opts)
	logging.Init(cfg.LoggingConfig())

	loader, err := catalog.NewLoader(cfg.Catalog.DuckDBPath)
	if err != nil {
		return fmt.Errorf("open catalog loader: %w", err)
	}
	defer func() { _ = loader.Close() }()

	var extra []catalog.InteractionSource
	if opts.logPath != "" {
		interactionLog, err := eventprocessor.OpenInteractionLog(opts.logPath, false)
		if err != nil {
			return fmt.Errorf("open interaction log: %w", err)
		}
		defer func() { _ = interactionLog.Close() }()
		extra = append(extra, interactionLog)
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return err
	}
	store, err := storage.NewStore(cfg.Recommend.ModelPath)
	if err != nil {
		return fmt.Errorf("open model store: %w", err)
	}
	engine.SetStore(store)
	engine.SetDataProvider(catalog.NewSource(loader, cfg.Catalog.ProductsPath, cfg.Catalog.InteractionsPath,
		logging.WithComponent("catalog"), extra...))

	start := time.Now()
	if err := engine.Train(ctx); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	status := engine.Status()
	logging.Info().
		Int("version", status.ModelVersion).
		Int("products", status.ProductCount).
		Int("users", status.UserCount).
		Int("interactions", status.InteractionCount).
		Int("vocabulary", status.VocabularySize).
		Str("model_path", store.Dir()).
		Dur("took", time.Since(start)).
		Msg("training finished")
	return nil
}

func applyOverrides(cfg *config.Config, opts *options) {
	if opts.products != "" {
		cfg.Catalog.ProductsPath = opts.products
	}
	if opts.interactions != "" {
		cfg.Catalog.InteractionsPath = opts.interactions
	}
	if opts.modelPath != "" {
		cfg.Recommend.ModelPath = opts.modelPath
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("training failed")
		stop()
		os.Exit(1)
	}
}
