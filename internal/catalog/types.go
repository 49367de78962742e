// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package catalog

import (
	"math"
	"strings"
	"time"
)

// Product is a single catalog row.
//
// Numeric attributes use NaN for "unknown"; text attributes are never nil and
// use the empty string for "unknown".
type Product struct {
	ID            string
	Title         string
	Description   string
	Price         float64
	CategoryID    string
	Category      string
	SubCategoryID string
	SubCategory   string
	Brand         string
	SellerName    string
	Model         string
	Stock         float64
	Discount      float64
	ImageLink     string
}

// HasPrice reports whether the product carries a usable price.
func (p *Product) HasPrice() bool {
	return !math.IsNaN(p.Price) && !math.IsInf(p.Price, 0)
}

// FeatureText returns the text used to build the content feature space:
// title, description, categorical identifiers and brand/seller names.
func (p *Product) FeatureText() string {
	parts := []string{
		p.Title,
		p.Description,
		p.CategoryID,
		p.Category,
		p.SubCategoryID,
		p.SubCategory,
		p.Brand,
		p.SellerName,
	}
	return strings.Join(parts, " ")
}

// Columns records which optional columns were present in the source table.
// Filters consult it to decide which attributes a match may use.
type Columns struct {
	Category    bool
	SubCategory bool
	Brand       bool
	SellerName  bool
	Model       bool
}

// Interaction is a positive-weighted edge between a user and a product.
type Interaction struct {
	UserID     string    `json:"user_id" validate:"required,max=128"`
	ProductID  string    `json:"product_id" validate:"required,max=128"`
	EventType  string    `json:"event_type" validate:"omitempty,max=64"`
	Weight     float64   `json:"weight" validate:"gt=0"`
	RecordedAt time.Time `json:"recorded_at,omitempty"`
}
