// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package algorithms

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/recommend/storage"
)

// CollaborativeConfig contains configuration for user-based collaborative filtering.
type CollaborativeConfig struct {
	// Neighbors is the number of most similar other users whose
	// interactions are blended into a recommendation.
	Neighbors int

	// NumWorkers is the number of parallel workers.
	NumWorkers int
}

// DefaultCollaborativeConfig returns default collaborative configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		Neighbors:  5,
		NumWorkers: 4,
	}
}

// UserItemMatrix is the dense user-by-product weight table.
// Row order is UserIDs and column order is ProductIDs; both are sorted.
type UserItemMatrix struct {
	UserIDs    []string
	ProductIDs []string
	Weights    [][]float64
}

// BuildUserItemMatrix pivots interactions into a user-item matrix.
// Repeated (user, product) pairs are averaged and missing pairs are 0.
// Interactions with a non-positive weight are ignored.
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func BuildUserItemMatrix(interactions []catalog.Interaction) *UserItemMatrix {
	type pair struct{ user, product string }
	sums := make(map[pair]float64)
	counts := make(map[pair]int)
	users := make(map[string]struct{})
	products := make(map[string]struct{})

	for _, in := range interactions {
		if in.Weight <= 0 || in.UserID == "" || in.ProductID == "" {
			continue
		}
		k := pair{in.UserID, in.ProductID}
		sums[k] += in.Weight
		counts[k]++
		users[in.UserID] = struct{}{}
		products[in.ProductID] = struct{}{}
	}

	m := &UserItemMatrix{
		UserIDs:    sortedIDs(users),
		ProductIDs: sortedIDs(products),
	}

	userIdx := indexOf(m.UserIDs)
	productIdx := indexOf(m.ProductIDs)

	m.Weights = make([][]float64, len(m.UserIDs))
	for i := range m.Weights {
		m.Weights[i] = make([]float64, len(m.ProductIDs))
	}
	for k, sum := range sums {
		m.Weights[userIdx[k.user]][productIdx[k.product]] = sum / float64(counts[k])
	}

	return m
}

// ComputeUserSimilarity returns the symmetric user-user cosine matrix.
// The diagonal is 1 for every user.
func ComputeUserSimilarity(ctx context.Context, weights [][]float64, workers int) ([][]float64, error) {
	n := len(weights)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	// Each worker fills the upper triangle of its rows and mirrors it.
	// Cells (i, j) and (j, i) are only ever written by the owner of row min(i, j).
	err := parallelRows(ctx, n, workers, func(i int) {
		sim[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := clampUnit(cosineSimilarity(weights[i], weights[j]))
			sim[i][j] = s
			sim[j][i] = s
		}
	})
	if err != nil {
		return nil, err
	}

	return sim, nil
}

// CollaborativeModel recommends products that similar users interacted with.
// It is immutable after construction and safe for concurrent use.
type CollaborativeModel struct {
	matrix     *UserItemMatrix
	similarity [][]float64
	userIndex  map[string]int
	neighbors  int
}

// BuildCollaborativeModel builds the matrix and user similarity from interactions.
// No interactions yield an empty model for which every user is a cold start.
func BuildCollaborativeModel(ctx context.Context, interactions []catalog.Interaction, cfg CollaborativeConfig) (*CollaborativeModel, error) {
	if cfg.Neighbors <= 0 {
		cfg.Neighbors = 5
	}

	matrix := BuildUserItemMatrix(interactions)
	sim, err := ComputeUserSimilarity(ctx, matrix.Weights, cfg.NumWorkers)
	if err != nil {
		return nil, err
	}

	return &CollaborativeModel{
		matrix:     matrix,
		similarity: sim,
		userIndex:  indexOf(matrix.UserIDs),
		neighbors:  cfg.Neighbors,
	}, nil
}

// EmptyCollaborativeModel returns a model with no users, for which every
// user is a cold start.
func EmptyCollaborativeModel(cfg CollaborativeConfig) *CollaborativeModel {
	if cfg.Neighbors <= 0 {
		cfg.Neighbors = 5
	}
	return &CollaborativeModel{
		matrix:     &UserItemMatrix{},
		similarity: [][]float64{},
		userIndex:  map[string]int{},
		neighbors:  cfg.Neighbors,
	}
}

// CollaborativeModelFromState restores a model saved with State.
//
//nolint:gocritic // state is decoded by value from storage
func CollaborativeModelFromState(state storage.CollaborativeModelState) (*CollaborativeModel, error) {
	users := len(state.UserIDs)
	if len(state.Matrix) != users || len(state.Similarity) != users {
		return nil, fmt.Errorf("collaborative model: %d users but %d matrix rows and %d similarity rows",
			users, len(state.Matrix), len(state.Similarity))
	}
	for i, row := range state.Matrix {
		if len(row) != len(state.ProductIDs) {
			return nil, fmt.Errorf("collaborative model: matrix row %d has %d columns, want %d",
				i, len(row), len(state.ProductIDs))
		}
	}

	neighbors := state.Neighbors
	if neighbors <= 0 {
		neighbors = 5
	}

	return &CollaborativeModel{
		matrix: &UserItemMatrix{
			UserIDs:    state.UserIDs,
			ProductIDs: state.ProductIDs,
			Weights:    state.Matrix,
		},
		similarity: state.Similarity,
		userIndex:  indexOf(state.UserIDs),
		neighbors:  neighbors,
	}, nil
}

// State returns the serializable form of the model.
func (m *CollaborativeModel) State() storage.CollaborativeModelState {
	return storage.CollaborativeModelState{
		UserIDs:    m.matrix.UserIDs,
		ProductIDs: m.matrix.ProductIDs,
		Matrix:     m.matrix.Weights,
		Similarity: m.similarity,
		Neighbors:  m.neighbors,
	}
}

// UserCount returns the number of known users.
func (m *CollaborativeModel) UserCount() int {
	return len(m.matrix.UserIDs)
}

// HasUser reports whether userID has a row in the matrix.
func (m *CollaborativeModel) HasUser(userID string) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// ScoredProduct is a product id with its neighbourhood score.
type ScoredProduct struct {
	ProductID string
	Score     float64
}

// Recommend ranks every product the user has not interacted with.
//
// The top Neighbors most similar other users are selected, ties going to the
// earlier user, and their rows are summed weighted by similarity. Products
// the user already interacted with are excluded. Ranking is by descending
// score with ties in product order, so zero-score products trail the list.
// The second return is false for unknown users.
func (m *CollaborativeModel) Recommend(userID string) ([]ScoredProduct, bool) {
	idx, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}

	type peer struct {
		row int
		sim float64
	}
	peers := make([]peer, 0, len(m.similarity)-1)
	for j, s := range m.similarity[idx] {
		if j == idx {
			continue
		}
		peers = append(peers, peer{j, s})
	}
	sort.SliceStable(peers, func(a, b int) bool { return peers[a].sim > peers[b].sim })
	if len(peers) > m.neighbors {
		peers = peers[:m.neighbors]
	}

	scores := make([]float64, len(m.matrix.ProductIDs))
	for _, p := range peers {
		for c, w := range m.matrix.Weights[p.row] {
			scores[c] += p.sim * w
		}
	}

	seen := m.matrix.Weights[idx]
	ranked := make([]Scored, 0, len(scores))
	for c, s := range scores {
		if seen[c] > 0 {
			continue
		}
		ranked = append(ranked, Scored{Row: c, Score: s})
	}
	sortScored(ranked)

	out := make([]ScoredProduct, len(ranked))
	for i, r := range ranked {
		out[i] = ScoredProduct{ProductID: m.matrix.ProductIDs[r.Row], Score: r.Score}
	}
	return out, true
}

// ColdStartSample draws n distinct rows from [0, total) without replacement.
// The draw is seeded by seed and key, so the same key always gets the same
// sample from the same model. If n >= total every row is returned, shuffled.
// The result is not personalized.
func ColdStartSample(seed uint64, key string, total, n int) []int {
	if total <= 0 || n <= 0 {
		return []int{}
	}
	if n > total {
		n = total
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	rng := rand.New(rand.NewPCG(seed, h.Sum64())) //nolint:gosec // sampling, not security

	// partial Fisher-Yates over a sparse swap map
	swapped := make(map[int]int, n)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(total-i)
		vi, vj := at(i), at(j)
		swapped[i], swapped[j] = vj, vi
		out[i] = vj
	}
	return out
}

// sortedIDs returns ids in ascending order, numeric ids first and compared
// by value.
func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
	return ids
}

func lessID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func indexOf(ids []string) map[string]int {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}
