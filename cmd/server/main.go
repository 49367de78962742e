// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/shopwise/internal/api"
	"github.com/tomtom215/shopwise/internal/cache"
	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/config"
	"github.com/tomtom215/shopwise/internal/intent"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/supervisor"
	"github.com/tomtom215/shopwise/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingConfig())

	logging.Info().
		Str("products_path", cfg.Catalog.ProductsPath).
		Str("model_path", cfg.Recommend.ModelPath).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Shopwise with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader, err := catalog.NewLoader(cfg.Catalog.DuckDBPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog loader")
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog loader")
		}
	}()

	// Interaction ingestion opens the log the trainer reads from, so it
	// comes before the engine.
	events, err := initEvents(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize interaction ingestion")
	}
	defer events.Close()

	var extra []catalog.InteractionSource
	if events != nil {
		extra = append(extra, events.Log)
	}
	source := catalog.NewSource(loader, cfg.Catalog.ProductsPath, cfg.Catalog.InteractionsPath,
		logging.WithComponent("catalog"), extra...)

	engine, err := initEngine(ctx, cfg, source)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	resultCache, err := cache.New(cfg.CacheConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize result cache")
	}
	defer func() {
		if err := resultCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing result cache")
		}
	}()
	logging.Info().Bool("enabled", cfg.Cache.Enabled).Str("backend", cfg.Cache.Backend).Msg("Result cache initialized")

	var parser api.IntentParser
	if cfg.Intent.Enabled {
		p, err := intent.NewParser(cfg.IntentConfig(), logging.WithComponent("intent"))
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize intent parser")
		}
		parser = p
		logging.Info().Bool("llm_available", p.Available()).Str("model", cfg.Intent.Model).Msg("Intent parser initialized")
	} else {
		logging.Info().Msg("Intent parser disabled (INTENT_ENABLED=false)")
	}

	var publisher api.InteractionPublisher
	if events != nil {
		publisher = events.Publisher
	}

	handler := api.NewHandler(engine, parser, publisher, resultCache, api.HandlerConfig{
		RequestTimeout:  cfg.Server.Timeout,
		TrainingTimeout: cfg.Recommend.TrainingTimeout,
		MaxN:            cfg.Recommend.MaxN,
	})
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === BUILD SUPERVISOR TREE ===

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if events != nil {
		tree.AddIngestService(services.NewRouterService(events.RouterFactory()))
		logging.Info().Str("backend", events.Bus.Backend()).Str("topic", cfg.Events.Topic).Msg("Interaction router added to supervisor tree")
	}

	tree.AddTrainingService(services.NewTrainerService(engine, services.TrainerServiceConfig{
		Interval: cfg.Recommend.TrainInterval,
		Timeout:  cfg.Recommend.TrainingTimeout,
	}, logging.WithComponent("trainer")))

	tree.AddAPIService(services.NewAPIService(server, engine, services.APIServiceConfig{
		Addr:            server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logging.WithComponent("api")))

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
