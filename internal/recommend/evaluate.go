// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/recommend/algorithms"
)

// trainFraction is the share of each user's history used for training.
const trainFraction = 0.8

// EvaluationResult holds offline ranking metrics at a cutoff K.
type EvaluationResult struct {
	K              int     `json:"k"`
	HitRate        float64 `json:"hit_rate"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	Coverage       float64 `json:"coverage"`
	UsersEvaluated int     `json:"users_evaluated"`
}

// Split divides interactions per user in recorded order: the first 80% of
// each user's history is training data and the rest is held out. Users with
// a single interaction contribute only to training.
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func Split(interactions []catalog.Interaction) (train []catalog.Interaction, test map[string][]string) {
	ordered := make([]catalog.Interaction, len(interactions))
	copy(ordered, interactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.Before(ordered[j].RecordedAt)
	})

	byUser := make(map[string][]catalog.Interaction)
	var users []string
	for _, in := range ordered {
		if _, ok := byUser[in.UserID]; !ok {
			users = append(users, in.UserID)
		}
		byUser[in.UserID] = append(byUser[in.UserID], in)
	}

	test = make(map[string][]string)
	for _, u := range users {
		hist := byUser[u]
		cut := int(float64(len(hist)) * trainFraction)
		if cut < 1 {
			cut = 1
		}
		train = append(train, hist[:cut]...)
		if cut == len(hist) {
			continue
		}

		seen := make(map[string]struct{})
		for _, in := range hist[cut:] {
			if _, dup := seen[in.ProductID]; dup {
				continue
			}
			seen[in.ProductID] = struct{}{}
			test[u] = append(test[u], in.ProductID)
		}
	}

	return train, test
}

// Evaluate trains the collaborative model on the training split and scores
// its top-k recommendations against each user's held-out products.
//
//nolint:gocritic // Columns is small and passed by value
func Evaluate(ctx context.Context, cfg *Config, products []catalog.Product, cols catalog.Columns, interactions []catalog.Interaction, k int) (*EvaluationResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	cat, err := catalog.New(products, cols)
	if err != nil {
		return nil, err
	}

	train, test := Split(interactions)
	collab, err := algorithms.BuildCollaborativeModel(ctx, train, cfg.collaborativeConfig())
	if err != nil {
		return nil, fmt.Errorf("collaborative model: %w", err)
	}

	s := &Snapshot{Catalog: cat, Collaborative: collab}

	users := make([]string, 0, len(test))
	for u := range test {
		users = append(users, u)
	}
	sort.Strings(users)

	res := &EvaluationResult{K: k}
	recommended := make(map[string]struct{})
	var hits, precision, recall float64

	for _, u := range users {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A cold-start sample is not a ranking; users whose training
		// history carried no usable weight are left out.
		if !collab.HasUser(u) {
			continue
		}

		held := make(map[string]struct{}, len(test[u]))
		for _, id := range test[u] {
			held[id] = struct{}{}
		}

		recs := s.RecommendForUser(u, k)
		found := 0
		for i := range recs.Products {
			id := recs.Products[i].ID
			recommended[id] = struct{}{}
			if _, ok := held[id]; ok {
				found++
			}
		}

		if found > 0 {
			hits++
		}
		precision += float64(found) / float64(k)
		recall += float64(found) / float64(len(held))
		res.UsersEvaluated++
	}

	if res.UsersEvaluated > 0 {
		n := float64(res.UsersEvaluated)
		res.HitRate = hits / n
		res.Precision = precision / n
		res.Recall = recall / n
	}
	res.Coverage = float64(len(recommended)) / float64(cat.Len())

	return res, nil
}
