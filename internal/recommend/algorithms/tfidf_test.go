// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package algorithms

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases and splits", "Bosch Drill-Set", []string{"bosch", "drill", "set"}},
		{"drops single runes", "a b cd", []string{"cd"}},
		{"drops stop words", "show me the cordless drill", []string{"cordless", "drill"}},
		{"keeps digits", "18v 2000w", []string{"18v", "2000w"}},
		{"unicode letters", "Café ürün", []string{"café", "ürün"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFitVectorizer(t *testing.T) {
	docs := []string{"red shoe", "blue shoe", "red hat"}
	v := FitVectorizer(docs, 0)

	if got, want := v.Terms(), []string{"blue", "hat", "red", "shoe"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Terms() = %v, want %v", got, want)
	}

	// "blue" appears in 1 of 3 documents: ln(4/2)+1
	if got, want := v.IDF()[0], math.Log(2)+1; math.Abs(got-want) > 1e-12 {
		t.Errorf("idf(blue) = %v, want %v", got, want)
	}
	// "red" appears in 2 of 3 documents: ln(4/3)+1
	if got, want := v.IDF()[2], math.Log(4.0/3)+1; math.Abs(got-want) > 1e-12 {
		t.Errorf("idf(red) = %v, want %v", got, want)
	}
}

func TestFitVectorizer_MaxFeatures(t *testing.T) {
	docs := []string{"drill drill drill", "drill grinder", "hammer grinder"}
	v := FitVectorizer(docs, 2)

	if got, want := v.Terms(), []string{"drill", "grinder"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestVectorizer_Transform(t *testing.T) {
	v := FitVectorizer([]string{"red shoe", "blue shoe", "red hat"}, 0)

	vec := v.Transform("red red shoe")
	var norm float64
	for _, x := range vec.Values {
		norm += x * x
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("vector norm^2 = %v, want 1", norm)
	}
	for i := 1; i < len(vec.Indices); i++ {
		if vec.Indices[i-1] >= vec.Indices[i] {
			t.Fatalf("indices not ascending: %v", vec.Indices)
		}
	}

	if !v.Transform("completely unknown words").IsZero() {
		t.Error("out-of-vocabulary document should map to the zero vector")
	}
}

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Indices: []int32{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := SparseVector{Indices: []int32{2, 3, 5}, Values: []float64{4, 9, 1}}

	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot() = %v, want 11", got)
	}
	if got := a.Dot(SparseVector{}); got != 0 {
		t.Errorf("Dot(zero) = %v, want 0", got)
	}
}

func TestNewVectorizerFromState(t *testing.T) {
	orig := FitVectorizer([]string{"cordless drill", "angle grinder"}, 0)
	restored := NewVectorizerFromState(orig.Terms(), orig.IDF())

	a := orig.Transform("cordless grinder")
	b := restored.Transform("cordless grinder")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("restored Transform() = %+v, want %+v", b, a)
	}
}
