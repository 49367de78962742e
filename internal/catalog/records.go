// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package catalog

import "math"

// Record is the JSON shape of a product returned to callers.
// Numeric fields are pointers so that unknown values serialize as null.
type Record struct {
	ProductID     string   `json:"product_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	CategoryID    string   `json:"category_id"`
	Category      string   `json:"category"`
	SubCategoryID string   `json:"sub_category_id"`
	SubCategory   string   `json:"sub_category"`
	Brand         string   `json:"brand"`
	SellerName    string   `json:"seller_name"`
	Model         string   `json:"model"`
	Stock         *float64 `json:"stock"`
	Discount      *float64 `json:"discount"`
	ImageLink     string   `json:"image_link"`
}

// ToRecords is the single serialization boundary for product lists.
// Every operation that returns products to a caller passes through here,
// which is where NaN and infinite values become null.
// The result is never nil, so an empty list encodes as [].
func ToRecords(products []Product) []Record {
	out := make([]Record, len(products))
	for i := range products {
		p := &products[i]
		out[i] = Record{
			ProductID:     p.ID,
			Title:         p.Title,
			Description:   p.Description,
			Price:         nullable(p.Price),
			CategoryID:    p.CategoryID,
			Category:      p.Category,
			SubCategoryID: p.SubCategoryID,
			SubCategory:   p.SubCategory,
			Brand:         p.Brand,
			SellerName:    p.SellerName,
			Model:         p.Model,
			Stock:         nullable(p.Stock),
			Discount:      nullable(p.Discount),
			ImageLink:     p.ImageLink,
		}
	}
	return out
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
