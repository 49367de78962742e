// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/shopwise/internal/catalog"
)

var errNotFinite = errors.New("must be a finite number")

// ParseFilters builds Filters from raw request values. Empty strings are
// absent filters; a non-numeric price yields a *FilterError.
func ParseFilters(minPrice, maxPrice, category, brand string) (Filters, error) {
	var f Filters
	var err error

	if f.MinPrice, err = parsePrice("min_price", minPrice); err != nil {
		return Filters{}, err
	}
	if f.MaxPrice, err = parsePrice("max_price", maxPrice); err != nil {
		return Filters{}, err
	}
	f.Category = strings.TrimSpace(category)
	f.Brand = strings.TrimSpace(brand)

	return f, nil
}

func parsePrice(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &FilterError{Field: field, Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &FilterError{Field: field, Value: raw, Err: errNotFinite}
	}
	return &v, nil
}

// matcher is a Filters value prepared for repeated matching.
type matcher struct {
	minPrice *float64
	maxPrice *float64
	category string
	brand    string
	cols     catalog.Columns
}

//nolint:gocritic // Filters is small and passed by value
func newMatcher(f Filters, cols catalog.Columns) matcher {
	return matcher{
		minPrice: f.MinPrice,
		maxPrice: f.MaxPrice,
		category: strings.ToLower(strings.TrimSpace(f.Category)),
		brand:    strings.ToLower(strings.TrimSpace(f.Brand)),
		cols:     cols,
	}
}

// match applies every set filter; all must pass.
// A product without a known price fails any price bound.
func (m *matcher) match(p *catalog.Product) bool {
	if m.minPrice != nil && (!p.HasPrice() || p.Price < *m.minPrice) {
		return false
	}
	if m.maxPrice != nil && (!p.HasPrice() || p.Price > *m.maxPrice) {
		return false
	}

	if m.category != "" {
		var ok bool
		if m.cols.Category || m.cols.SubCategory {
			ok = containsFold(p.Category, m.category) || containsFold(p.SubCategory, m.category)
		} else {
			ok = containsFold(p.Title, m.category)
		}
		if !ok {
			return false
		}
	}

	if m.brand != "" {
		ok := containsFold(p.Brand, m.brand) ||
			containsFold(p.SellerName, m.brand) ||
			containsFold(p.Title, m.brand) ||
			(m.cols.Model && containsFold(p.Model, m.brand))
		if !ok {
			return false
		}
	}

	return true
}

// filterRows returns the rows passing f, in catalog order.
//
//nolint:gocritic // Filters is small and passed by value
func filterRows(cat *catalog.Catalog, f Filters) []int {
	m := newMatcher(f, cat.Columns())
	rows := make([]int, 0, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		if m.match(cat.At(i)) {
			rows = append(rows, i)
		}
	}
	return rows
}

// containsFold reports whether lowerNeedle occurs in s, ignoring case.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
