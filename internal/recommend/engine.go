// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/metrics"
	"github.com/tomtom215/shopwise/internal/recommend/algorithms"
	"github.com/tomtom215/shopwise/internal/recommend/storage"
)

// artifactNames is the set every training run persists under one version.
var artifactNames = []string{
	storage.ArtifactCatalog,
	storage.ArtifactContent,
	storage.ArtifactCollaborative,
}

// DataProvider supplies the training inputs.
type DataProvider interface {
	// LoadProducts returns the catalog rows in their canonical order.
	LoadProducts(ctx context.Context) ([]catalog.Product, catalog.Columns, error)

	// LoadInteractions returns every user-product interaction.
	// No interactions is a valid answer.
	LoadInteractions(ctx context.Context) ([]catalog.Interaction, error)
}

// Engine serves requests from the currently published Snapshot and owns the
// single trainer that replaces it. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	snapshot atomic.Pointer[Snapshot]

	trainMu  sync.Mutex
	statusMu sync.RWMutex
	status   Status

	dataProvider DataProvider
	store        *storage.Store
}

// NewEngine creates a new recommendation engine with no published model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetDataProvider sets the data source used by Train.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetStore enables artifact persistence. Without a store, Train only
// publishes in memory and LoadLatest reports ErrMissingArtifact.
func (e *Engine) SetStore(s *storage.Store) {
	e.store = s
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Snapshot returns the published model set, or nil before the first publish.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Ready reports whether a model set has been published.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Publish atomically replaces the served model set.
func (e *Engine) Publish(s *Snapshot) {
	e.snapshot.Store(s)

	e.statusMu.Lock()
	e.status.Ready = true
	e.status.ModelVersion = s.Version
	e.status.TrainedAt = s.TrainedAt
	e.status.ProductCount = s.Catalog.Len()
	e.status.UserCount = s.Collaborative.UserCount()
	e.status.InteractionCount = s.InteractionCount
	e.status.VocabularySize = s.Content.VocabularySize()
	e.status.ContentPrecomputed = s.Content.Precomputed()
	e.statusMu.Unlock()

	metrics.SetModelInfo(s.Version, s.Catalog.Len(), s.Collaborative.UserCount(),
		s.InteractionCount, s.Content.VocabularySize())

	e.logger.Info().
		Int("version", s.Version).
		Int("products", s.Catalog.Len()).
		Int("users", s.Collaborative.UserCount()).
		Msg("model published")
}

// Status returns the current model and trainer state.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()

	return e.status
}

// RecommendForUser returns personalized recommendations for userID.
func (e *Engine) RecommendForUser(ctx context.Context, userID string, n int) (Result, error) {
	s, err := e.ready(ctx)
	if err != nil {
		return Result{}, err
	}
	res := s.RecommendForUser(userID, e.config.clampN(n, e.config.DefaultN))
	recordResult("user", res)
	return res, nil
}

// SimilarProducts returns products similar in content to productID.
func (e *Engine) SimilarProducts(ctx context.Context, productID string, n int) (Result, error) {
	s, err := e.ready(ctx)
	if err != nil {
		return Result{}, err
	}
	res := s.SimilarProducts(productID, e.config.clampN(n, e.config.DefaultN))
	recordResult("similar", res)
	return res, nil
}

// Search runs the hybrid keyword, semantic and filter cascade.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Search(ctx context.Context, req SearchRequest) (Result, error) {
	s, err := e.ready(ctx)
	if err != nil {
		return Result{}, err
	}
	req.N = e.config.clampN(req.N, e.config.SearchDefaultN)
	res := s.Search(req)
	recordResult("search", res)
	return res, nil
}

// recordResult labels a served result by its stage or fallback.
//
//nolint:gocritic // hugeParam: Result is read once
func recordResult(operation string, res Result) {
	outcome := "ok"
	switch {
	case res.Stage != "":
		outcome = string(res.Stage)
	case res.Fallback != FallbackNone:
		outcome = string(res.Fallback)
	}
	metrics.RecordRecommendation(operation, outcome, len(res.Products))
}

func (e *Engine) ready(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := e.snapshot.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

// Train loads fresh data, builds a new model set, persists it and publishes
// it. At most one Train runs at a time; a concurrent call returns
// ErrTrainingInProgress immediately. Readers keep using the previous
// snapshot until the new one is published.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		metrics.RecordTrainingSkipped()
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	if e.dataProvider == nil {
		return ErrNoDataProvider
	}

	start := time.Now()
	e.setTraining(true)
	e.logger.Info().Msg("starting model training")

	err := e.train(ctx, start)
	metrics.RecordTraining(time.Since(start), err)

	e.statusMu.Lock()
	e.status.IsTraining = false
	e.status.LastTrainingDurationMS = time.Since(start).Milliseconds()
	if err != nil {
		e.status.LastError = err.Error()
	} else {
		e.status.LastError = ""
	}
	e.statusMu.Unlock()

	if err != nil {
		e.logger.Error().Err(err).Msg("model training failed")
		return err
	}
	return nil
}

func (e *Engine) train(ctx context.Context, start time.Time) error {
	trainCtx, cancel := context.WithTimeout(ctx, e.config.TrainingTimeout)
	defer cancel()

	products, cols, err := e.dataProvider.LoadProducts(trainCtx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	interactions, err := e.dataProvider.LoadInteractions(trainCtx)
	if err != nil {
		// BuildSnapshot substitutes an empty collaborative model, so every
		// user is served the cold-start sample.
		e.logger.Warn().Err(err).Msg("interactions unavailable, training without them")
		interactions = nil
	}

	s, err := BuildSnapshot(trainCtx, e.config, products, cols, interactions)
	if err != nil {
		return fmt.Errorf("build models: %w", err)
	}
	s.TrainedAt = start

	if e.store != nil {
		s.Version = e.store.NextVersion()
		if err := e.persist(trainCtx, s, time.Since(start)); err != nil {
			return fmt.Errorf("persist models: %w", err)
		}
	} else if prev := e.snapshot.Load(); prev != nil {
		s.Version = prev.Version + 1
	} else {
		s.Version = 1
	}

	e.Publish(s)

	if e.store != nil {
		for _, name := range artifactNames {
			if err := e.store.Prune(trainCtx, name, e.config.KeepVersions); err != nil {
				e.logger.Warn().Err(err).Str("artifact", name).Msg("prune failed")
			}
		}
	}

	e.logger.Info().
		Int("version", s.Version).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Int("products", s.Catalog.Len()).
		Int("users", s.Collaborative.UserCount()).
		Int("interactions", s.InteractionCount).
		Msg("model training complete")

	return nil
}

func (e *Engine) persist(ctx context.Context, s *Snapshot, took time.Duration) error {
	meta := storage.ModelMetadata{
		TrainedAt:          s.TrainedAt,
		InteractionCount:   s.InteractionCount,
		ProductCount:       s.Catalog.Len(),
		UserCount:          s.Collaborative.UserCount(),
		TrainingDurationMS: took.Milliseconds(),
	}

	states := map[string]interface{}{
		storage.ArtifactCatalog: storage.CatalogState{
			Products: s.Catalog.Products(),
			Columns:  s.Catalog.Columns(),
		},
		storage.ArtifactContent:       s.Content.State(),
		storage.ArtifactCollaborative: s.Collaborative.State(),
	}

	// LatestComplete ignores this version until all three files exist.
	for _, name := range artifactNames {
		if err := e.store.Save(ctx, name, s.Version, states[name], meta); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}

// LoadLatest restores and publishes the newest complete artifact set.
// It fails with ErrMissingArtifact when nothing usable is stored and with
// ErrSchemaMismatch when the artifacts come from an incompatible build.
func (e *Engine) LoadLatest(ctx context.Context) error {
	if e.store == nil {
		return ErrMissingArtifact
	}

	version, ok := e.store.LatestComplete(artifactNames...)
	if !ok {
		return ErrMissingArtifact
	}

	var catState storage.CatalogState
	meta, err := e.store.Load(ctx, storage.ArtifactCatalog, version, &catState)
	if err != nil {
		return loadError(storage.ArtifactCatalog, err)
	}
	var contentState storage.ContentModelState
	if _, err := e.store.Load(ctx, storage.ArtifactContent, version, &contentState); err != nil {
		return loadError(storage.ArtifactContent, err)
	}
	var collabState storage.CollaborativeModelState
	if _, err := e.store.Load(ctx, storage.ArtifactCollaborative, version, &collabState); err != nil {
		return loadError(storage.ArtifactCollaborative, err)
	}

	cat, err := catalog.New(catState.Products, catState.Columns)
	if err != nil {
		return fmt.Errorf("restore catalog: %w", err)
	}
	content, err := algorithms.ContentModelFromState(contentState)
	if err != nil {
		return fmt.Errorf("restore content model: %w", err)
	}
	if content.Len() != cat.Len() {
		return fmt.Errorf("restore content model: %d vectors for %d products", content.Len(), cat.Len())
	}
	collab, err := algorithms.CollaborativeModelFromState(collabState)
	if err != nil {
		return fmt.Errorf("restore collaborative model: %w", err)
	}

	e.Publish(&Snapshot{
		Catalog:          cat,
		Content:          content,
		Collaborative:    collab,
		Version:          version,
		TrainedAt:        meta.TrainedAt,
		InteractionCount: meta.InteractionCount,
		seed:             uint64(e.config.Seed), //nolint:gosec // seed bits are reinterpreted, not range-checked
	})

	return nil
}

func loadError(name string, err error) error {
	if errors.Is(err, storage.ErrModelNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrMissingArtifact, name, err)
	}
	return fmt.Errorf("load %s: %w", name, err)
}

func (e *Engine) setTraining(on bool) {
	e.statusMu.Lock()
	e.status.IsTraining = on
	e.statusMu.Unlock()
}
