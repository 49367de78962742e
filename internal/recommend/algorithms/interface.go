// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package algorithms

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Scored is a row index paired with its ranking score.
type Scored struct {
	Row   int
	Score float64
}

// sortScored orders by descending score; equal scores keep ascending row order.
func sortScored(s []Scored) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].Row < s[j].Row
	})
}

// Rows extracts the row indices from a ranking.
func Rows(s []Scored) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = s[i].Row
	}
	return out
}

// clampUnit pins floating point drift back into [0, 1].
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// cosineSimilarity computes cosine similarity between two dense vectors.
// A zero vector has similarity 0 with everything.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// parallelRows calls fn for every row in [0, n) across workers goroutines,
// each handling a contiguous chunk. It stops early when ctx is canceled.
func parallelRows(ctx context.Context, n, workers int, fn func(row int)) error {
	if workers <= 0 {
		workers = 4
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for row := start; row < end; row++ {
				if ContextCancelled(ctx) {
					return
				}
				fn(row)
			}
		}(start, end)
	}
	wg.Wait()

	return ctx.Err()
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
