// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package catalog

import (
	"errors"
	"strings"
)

// ErrEmptyCatalog is returned when a catalog would contain no products.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Catalog is the immutable, row-ordered product table.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	products []Product
	index    map[string]int
	columns  Columns
}

// New builds a catalog from products in the given order.
// Rows with an empty product id are dropped and duplicate ids keep their first
// occurrence, so every row in the result has a unique id.
//
//nolint:gocritic // Columns is small and passed by value
func New(products []Product, cols Columns) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
		columns:  cols,
	}

	for i := range products {
		id := strings.TrimSpace(products[i].ID)
		if id == "" {
			continue
		}
		if _, dup := c.index[id]; dup {
			continue
		}
		p := products[i]
		p.ID = id
		c.index[id] = len(c.products)
		c.products = append(c.products, p)
	}

	if len(c.products) == 0 {
		return nil, ErrEmptyCatalog
	}

	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// At returns the product stored at row i.
func (c *Catalog) At(i int) *Product {
	return &c.products[i]
}

// Index returns the row of the product with the given id.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Columns reports the optional columns present in the source data.
func (c *Catalog) Columns() Columns {
	return c.columns
}

// Products returns a copy of all rows in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Rows returns copies of the products at the given rows, in the given order.
func (c *Catalog) Rows(rows []int) []Product {
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		if r < 0 || r >= len(c.products) {
			continue
		}
		out = append(out, c.products[r])
	}
	return out
}

// FeatureTexts returns one feature document per row.
func (c *Catalog) FeatureTexts() []string {
	docs := make([]string, len(c.products))
	for i := range c.products {
		docs[i] = c.products[i].FeatureText()
	}
	return docs
}
