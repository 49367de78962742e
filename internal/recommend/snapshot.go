// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/recommend/algorithms"
)

// Snapshot is one fully built, immutable model set. Readers hold a pointer
// to it for the duration of a request; training publishes a new one.
type Snapshot struct {
	Catalog       *catalog.Catalog
	Content       *algorithms.ContentModel
	Collaborative *algorithms.CollaborativeModel

	Version          int
	TrainedAt        time.Time
	InteractionCount int

	seed uint64
}

// BuildSnapshot trains both models over products and interactions.
// No interactions is valid: every user is then a cold start.
//
//nolint:gocritic // Columns is small and passed by value
func BuildSnapshot(ctx context.Context, cfg *Config, products []catalog.Product, cols catalog.Columns, interactions []catalog.Interaction) (*Snapshot, error) {
	cat, err := catalog.New(products, cols)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Catalog:          cat,
		TrainedAt:        time.Now(),
		InteractionCount: len(interactions),
		seed:             uint64(cfg.Seed), //nolint:gosec // seed bits are reinterpreted, not range-checked
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := algorithms.BuildContentModel(gctx, cat.FeatureTexts(), cfg.contentConfig())
		if err != nil {
			return fmt.Errorf("content model: %w", err)
		}
		s.Content = m
		return nil
	})
	if len(interactions) == 0 {
		s.Collaborative = algorithms.EmptyCollaborativeModel(cfg.collaborativeConfig())
	} else {
		g.Go(func() error {
			m, err := algorithms.BuildCollaborativeModel(gctx, interactions, cfg.collaborativeConfig())
			if err != nil {
				return fmt.Errorf("collaborative model: %w", err)
			}
			s.Collaborative = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s, nil
}

// RecommendForUser returns up to n unseen products ranked by similar users.
// Unknown users get a non-personalized sample of exactly min(n, catalog size)
// products, flagged FallbackColdStart.
func (s *Snapshot) RecommendForUser(userID string, n int) Result {
	res := Result{ModelVersion: s.Version}

	ranked, known := s.Collaborative.Recommend(userID)
	if !known {
		rows := algorithms.ColdStartSample(s.seed, userID, s.Catalog.Len(), n)
		res.Products = s.Catalog.Rows(rows)
		res.Fallback = FallbackColdStart
		return res
	}

	// Products that left the catalog since they were interacted with are skipped.
	rows := make([]int, 0, n)
	for _, sp := range ranked {
		if len(rows) == n {
			break
		}
		if row, ok := s.Catalog.Index(sp.ProductID); ok {
			rows = append(rows, row)
		}
	}
	res.Products = s.Catalog.Rows(rows)
	return res
}

// SimilarProducts returns up to n products most similar in content to
// productID, never including productID itself. An unknown id yields an
// empty result flagged FallbackUnknownProduct.
func (s *Snapshot) SimilarProducts(productID string, n int) Result {
	res := Result{ModelVersion: s.Version}

	row, ok := s.Catalog.Index(strings.TrimSpace(productID))
	if !ok {
		res.Products = []catalog.Product{}
		res.Fallback = FallbackUnknownProduct
		return res
	}

	res.Products = s.Catalog.Rows(algorithms.Rows(s.Content.SimilarProducts(row, n)))
	return res
}

// Search runs the hybrid cascade over the catalog:
//
//  1. filter by price, category and brand
//  2. no query: the first n filtered rows in catalog order
//  3. keyword: the first n filtered rows whose title or description contains
//     the normalized query; any match at all is final, even fewer than n
//  4. semantic: the global content ranking of the query, restricted to
//     filtered rows, in global rank order
//  5. filtered fallback: the first n filtered rows
//
// An empty filtered set yields an empty result.
func (s *Snapshot) Search(req SearchRequest) Result {
	res := Result{ModelVersion: s.Version, Products: []catalog.Product{}}
	n := req.N
	if n <= 0 {
		res.Stage = StageEmpty
		return res
	}

	filtered := filterRows(s.Catalog, req.Filters)
	if len(filtered) == 0 {
		res.Stage = StageEmpty
		return res
	}

	query := NormalizeQuery(req.Query)
	if query == "" {
		res.Stage = StageBrowse
		res.Products = s.Catalog.Rows(head(filtered, n))
		return res
	}

	if rows := s.keywordMatches(filtered, query, n); len(rows) > 0 {
		res.Stage = StageKeyword
		res.Products = s.Catalog.Rows(rows)
		return res
	}

	if rows := s.semanticMatches(filtered, query, n); len(rows) > 0 {
		res.Stage = StageSemantic
		res.Products = s.Catalog.Rows(rows)
		return res
	}

	res.Stage = StageFilteredFallback
	res.Products = s.Catalog.Rows(head(filtered, n))
	return res
}

func (s *Snapshot) keywordMatches(filtered []int, query string, n int) []int {
	rows := make([]int, 0, n)
	for _, r := range filtered {
		p := s.Catalog.At(r)
		if containsFold(p.Title, query) || containsFold(p.Description, query) {
			rows = append(rows, r)
			if len(rows) == n {
				break
			}
		}
	}
	return rows
}

// semanticMatches walks the global similarity order and keeps rows that are
// members of the filtered set. Ranking is never recomputed over the subset.
func (s *Snapshot) semanticMatches(filtered []int, query string, n int) []int {
	member := make(map[int]struct{}, len(filtered))
	for _, r := range filtered {
		member[r] = struct{}{}
	}

	rows := make([]int, 0, n)
	for _, sc := range s.Content.RankQuery(query) {
		if sc.Score <= 0 {
			break
		}
		if _, ok := member[sc.Row]; !ok {
			continue
		}
		rows = append(rows, sc.Row)
		if len(rows) == n {
			break
		}
	}
	return rows
}

func head(rows []int, n int) []int {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
