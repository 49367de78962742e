// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// SparseVector is a sparse row with Indices in ascending order.
type SparseVector struct {
	Indices []int32
	Values  []float64
}

// Dot returns the inner product of two sparse vectors by merge-joining
// their sorted indices.
func (a SparseVector) Dot(b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// IsZero reports whether the vector has no non-zero entries.
func (a SparseVector) IsZero() bool {
	return len(a.Indices) == 0
}

// Vectorizer maps text to L2-normalized TF-IDF vectors over a fixed vocabulary.
//
// Tokens are runs of two or more letters, digits or underscores, lower-cased,
// with English stop words removed. IDF is smoothed: ln((1+n)/(1+df)) + 1.
type Vectorizer struct {
	terms []string
	vocab map[string]int32
	idf   []float64
}

// FitVectorizer learns the vocabulary and IDF weights from docs.
// When maxFeatures > 0 only the most frequent terms across the corpus are
// kept; ties are broken alphabetically.
func FitVectorizer(docs []string, maxFeatures int) *Vectorizer {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			termFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termFreq[terms[i]] != termFreq[terms[j]] {
				return termFreq[terms[i]] > termFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &Vectorizer{
		terms: terms,
		vocab: make(map[string]int32, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, t := range terms {
		v.vocab[t] = int32(i) //nolint:gosec // vocabulary is bounded by maxFeatures
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	return v
}

// NewVectorizerFromState rebuilds a vectorizer from its persisted terms and IDF.
func NewVectorizerFromState(terms []string, idf []float64) *Vectorizer {
	v := &Vectorizer{
		terms: terms,
		vocab: make(map[string]int32, len(terms)),
		idf:   idf,
	}
	for i, t := range terms {
		v.vocab[t] = int32(i) //nolint:gosec // vocabulary is bounded by maxFeatures
	}
	return v
}

// Terms returns the vocabulary in index order.
func (v *Vectorizer) Terms() []string {
	return v.terms
}

// IDF returns the inverse document frequency per term index.
func (v *Vectorizer) IDF() []float64 {
	return v.idf
}

// Transform maps doc into the fitted space. Out-of-vocabulary terms are
// ignored, so a document with no known terms yields the zero vector.
func (v *Vectorizer) Transform(doc string) SparseVector {
	counts := make(map[int32]float64)
	for _, tok := range Tokenize(doc) {
		if idx, ok := v.vocab[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := SparseVector{
		Indices: make([]int32, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Slice(vec.Indices, func(i, j int) bool { return vec.Indices[i] < vec.Indices[j] })

	var norm float64
	for _, idx := range vec.Indices {
		w := counts[idx] * v.idf[idx]
		vec.Values = append(vec.Values, w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range vec.Values {
		vec.Values[i] /= norm
	}

	return vec
}

// Tokenize lower-cases text and splits it into word tokens of at least two
// runes, dropping English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}
