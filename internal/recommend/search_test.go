// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/shopwise/internal/catalog"
)

func toolProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Title: "Bosch Drill", Description: "cordless impact drill", Price: 3000, Brand: "Bosch"},
		{ID: "2", Title: "Bosch Grinder", Description: "angle grinder, a tool for cutting metal", Price: 5000, Brand: "Bosch"},
		{ID: "3", Title: "Generic Hammer", Description: "claw hammer", Price: 500, Brand: "Acme"},
	}
}

func toolSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s, err := BuildSnapshot(context.Background(), DefaultConfig(), toolProducts(), catalog.Columns{Brand: true}, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	return s
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i := range products {
		out[i] = products[i].ID
	}
	return out
}

func price(v float64) *float64 { return &v }

func TestSearch_Scenarios(t *testing.T) {
	s := toolSnapshot(t)

	tests := []struct {
		name      string
		req       SearchRequest
		wantIDs   []string
		wantStage Stage
	}{
		{
			name:      "keyword match",
			req:       SearchRequest{Query: "drill", N: 5},
			wantIDs:   []string{"1"},
			wantStage: StageKeyword,
		},
		{
			name:      "semantic fallback",
			req:       SearchRequest{Query: "cutting tool", N: 5},
			wantIDs:   []string{"2"},
			wantStage: StageSemantic,
		},
		{
			name:      "no query browse",
			req:       SearchRequest{N: 5, Filters: Filters{MinPrice: price(1000)}},
			wantIDs:   []string{"1", "2"},
			wantStage: StageBrowse,
		},
		{
			name:      "filtered fallback",
			req:       SearchRequest{Query: "xyz-no-match", N: 5, Filters: Filters{Brand: "Acme"}},
			wantIDs:   []string{"3"},
			wantStage: StageFilteredFallback,
		},
		{
			name:      "empty filtered set",
			req:       SearchRequest{Query: "drill", N: 5, Filters: Filters{Brand: "Makita"}},
			wantIDs:   []string{},
			wantStage: StageEmpty,
		},
		{
			name:      "filler prefix stripped",
			req:       SearchRequest{Query: "Show me Hammer", N: 5},
			wantIDs:   []string{"3"},
			wantStage: StageKeyword,
		},
		{
			name:      "semantic restricted to filtered rows",
			req:       SearchRequest{Query: "cutting tool", N: 5, Filters: Filters{MaxPrice: price(4000)}},
			wantIDs:   []string{"1", "3"},
			wantStage: StageFilteredFallback,
		},
		{
			name:      "only filler is browse",
			req:       SearchRequest{Query: "find me ", N: 2},
			wantIDs:   []string{"1", "2"},
			wantStage: StageBrowse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Search(tt.req)
			if got := ids(res.Products); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Search() ids = %v, want %v", got, tt.wantIDs)
			}
			if res.Stage != tt.wantStage {
				t.Errorf("Search() stage = %s, want %s", res.Stage, tt.wantStage)
			}
			if res.Products == nil {
				t.Error("Search() returned nil products")
			}
		})
	}
}

func TestSearch_KeywordUnderfill(t *testing.T) {
	s := toolSnapshot(t)

	// "bosch" matches two titles; the third product is not added even though
	// n is larger and the semantic stage could rank it.
	res := s.Search(SearchRequest{Query: "bosch", N: 3})
	if got := ids(res.Products); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("Search(bosch) = %v, want [1 2]", got)
	}
	if res.Stage != StageKeyword {
		t.Errorf("stage = %s, want keyword", res.Stage)
	}
}

func TestSearch_KeywordTruncatesToN(t *testing.T) {
	s := toolSnapshot(t)

	res := s.Search(SearchRequest{Query: "bosch", N: 1})
	if got := ids(res.Products); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("Search(bosch, 1) = %v, want [1]", got)
	}
}

func TestSearch_PriceFilterProperty(t *testing.T) {
	products := toolProducts()
	products = append(products, catalog.Product{ID: "4", Title: "Unpriced Drill", Price: math.NaN()})
	s, err := BuildSnapshot(context.Background(), DefaultConfig(), products, catalog.Columns{Brand: true}, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	bounds := [][2]float64{{0, 10000}, {500, 500}, {1000, 5000}, {3001, 4999}, {0, 0}}
	queries := []string{"", "drill", "cutting tool", "nothing here"}

	for _, b := range bounds {
		for _, q := range queries {
			res := s.Search(SearchRequest{Query: q, N: 10, Filters: Filters{MinPrice: price(b[0]), MaxPrice: price(b[1])}})
			for _, p := range res.Products {
				if !p.HasPrice() || p.Price < b[0] || p.Price > b[1] {
					t.Errorf("Search(%q, [%v,%v]) returned %s priced %v", q, b[0], b[1], p.ID, p.Price)
				}
			}
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	s := toolSnapshot(t)
	req := SearchRequest{Query: "cutting tool", N: 5}

	first := ids(s.Search(req).Products)
	for i := 0; i < 20; i++ {
		if got := ids(s.Search(req).Products); !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d returned %v, first returned %v", i, got, first)
		}
	}
}

func TestSearch_NonPositiveN(t *testing.T) {
	s := toolSnapshot(t)
	if res := s.Search(SearchRequest{Query: "drill", N: 0}); len(res.Products) != 0 {
		t.Errorf("N=0 returned %v", ids(res.Products))
	}
}

func TestBuildSnapshot_NoInteractions(t *testing.T) {
	s := toolSnapshot(t)
	if s.Collaborative == nil || s.Collaborative.UserCount() != 0 {
		t.Fatal("snapshot without interactions should hold an empty collaborative model")
	}

	for _, user := range []string{"alice", "bob"} {
		res := s.RecommendForUser(user, 2)
		if res.Fallback != FallbackColdStart || len(res.Products) != 2 {
			t.Errorf("RecommendForUser(%s) = %q with %d products, want cold start with 2",
				user, res.Fallback, len(res.Products))
		}
	}
}
