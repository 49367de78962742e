// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/shopwise/internal/metrics"
)

// ErrMissingColumn is returned when a required column is absent from a source file.
var ErrMissingColumn = errors.New("required column missing")

// ErrUnsupportedFormat is returned for files that are neither CSV nor Parquet.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// minInteractionFileSize mirrors the upstream export job, which writes a bare
// header when there are no orders; anything shorter is treated as absent.
const minInteractionFileSize = 10

// productColumns maps Product fields to the accepted source column names.
// The first name is canonical; the rest are aliases seen in exports.
var productColumns = []struct {
	field   string
	aliases []string
}{
	{"id", []string{"product_id", "id"}},
	{"title", []string{"title", "name"}},
	{"description", []string{"description"}},
	{"price", []string{"price"}},
	{"category_id", []string{"category_id"}},
	{"category", []string{"category", "category_name"}},
	{"sub_category_id", []string{"sub_category_id"}},
	{"sub_category", []string{"sub_category", "sub_category_name"}},
	{"brand", []string{"brand"}},
	{"seller_name", []string{"seller_name", "seller"}},
	{"model", []string{"model"}},
	{"stock", []string{"stock"}},
	{"discount", []string{"discount"}},
	{"image_link", []string{"image_link", "image"}},
}

// Loader reads products and interactions through an embedded DuckDB engine.
type Loader struct {
	db *sql.DB
}

// NewLoader opens a DuckDB connection. Use ":memory:" unless the caller wants
// DuckDB to spill to a specific database file.
func NewLoader(path string) (*Loader, error) {
	if path == "" {
		path = ":memory:"
	}

	// Extensions are never auto-installed; CSV and Parquet readers are built in.
	connStr := path + "?preserve_insertion_order=true&autoinstall_known_extensions=false&autoload_known_extensions=false"

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &Loader{db: db}, nil
}

// Close releases the DuckDB connection.
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadProducts reads the product table at path, preserving file row order.
func (l *Loader) LoadProducts(ctx context.Context, path string) ([]Product, Columns, error) {
	start := time.Now()
	src, err := sourceExpr(path)
	if err != nil {
		return nil, Columns{}, err
	}

	present, err := l.columns(ctx, src)
	if err != nil {
		return nil, Columns{}, fmt.Errorf("inspect %s: %w", path, err)
	}

	resolved := make(map[string]string, len(productColumns))
	selects := make([]string, 0, len(productColumns))
	for _, pc := range productColumns {
		name, ok := lookupColumn(present, pc.aliases)
		if !ok {
			selects = append(selects, "NULL")
			continue
		}
		resolved[pc.field] = name
		selects = append(selects, fmt.Sprintf("CAST(%s AS VARCHAR)", quoteIdent(name)))
	}

	if _, ok := resolved["id"]; !ok {
		return nil, Columns{}, fmt.Errorf("%s: product_id: %w", path, ErrMissingColumn)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), src) //nolint:gosec // identifiers are quoted, path is a literal
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, Columns{}, fmt.Errorf("query products: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	var products []Product
	vals := make([]sql.NullString, len(productColumns))
	ptrs := make([]interface{}, len(productColumns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, Columns{}, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, Product{
			ID:            text(vals[0]),
			Title:         text(vals[1]),
			Description:   text(vals[2]),
			Price:         number(vals[3]),
			CategoryID:    text(vals[4]),
			Category:      text(vals[5]),
			SubCategoryID: text(vals[6]),
			SubCategory:   text(vals[7]),
			Brand:         text(vals[8]),
			SellerName:    text(vals[9]),
			Model:         text(vals[10]),
			Stock:         number(vals[11]),
			Discount:      number(vals[12]),
			ImageLink:     text(vals[13]),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, Columns{}, fmt.Errorf("iterate products: %w", err)
	}

	_, hasCategory := resolved["category"]
	_, hasSubCategory := resolved["sub_category"]
	_, hasBrand := resolved["brand"]
	_, hasSeller := resolved["seller_name"]
	_, hasModel := resolved["model"]

	metrics.RecordCatalogLoad("products", time.Since(start))
	return products, Columns{
		Category:    hasCategory,
		SubCategory: hasSubCategory,
		Brand:       hasBrand,
		SellerName:  hasSeller,
		Model:       hasModel,
	}, nil
}

// LoadInteractions reads (user_id, product_id, event_type, weight) rows.
// A missing or effectively empty file is a valid state and yields no rows.
// Rows without a usable weight are skipped; a file without a weight column
// gives every row weight 1.
func (l *Loader) LoadInteractions(ctx context.Context, path string) ([]Interaction, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat interactions: %w", err)
	}
	if info.Size() < minInteractionFileSize {
		return nil, nil
	}

	start := time.Now()
	src, err := sourceExpr(path)
	if err != nil {
		return nil, err
	}

	present, err := l.columns(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}

	userCol, ok := lookupColumn(present, []string{"user_id", "buyer_id"})
	if !ok {
		return nil, fmt.Errorf("%s: user_id: %w", path, ErrMissingColumn)
	}
	productCol, ok := lookupColumn(present, []string{"product_id"})
	if !ok {
		return nil, fmt.Errorf("%s: product_id: %w", path, ErrMissingColumn)
	}

	eventExpr := "NULL"
	if col, ok := lookupColumn(present, []string{"event_type"}); ok {
		eventExpr = fmt.Sprintf("CAST(%s AS VARCHAR)", quoteIdent(col))
	}
	weightExpr := "'1'"
	if col, ok := lookupColumn(present, []string{"weight"}); ok {
		weightExpr = fmt.Sprintf("CAST(%s AS VARCHAR)", quoteIdent(col))
	}

	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR), CAST(%s AS VARCHAR), %s, %s FROM %s", //nolint:gosec // identifiers are quoted
		quoteIdent(userCol), quoteIdent(productCol), eventExpr, weightExpr, src)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	var out []Interaction
	for rows.Next() {
		var user, product, event, weight sql.NullString
		if err := rows.Scan(&user, &product, &event, &weight); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		w := number(weight)
		if math.IsNaN(w) || math.IsInf(w, 0) || text(user) == "" || text(product) == "" {
			continue
		}
		out = append(out, Interaction{
			UserID:    text(user),
			ProductID: text(product),
			EventType: text(event),
			Weight:    w,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}

	metrics.RecordCatalogLoad("interactions", time.Since(start))
	return out, nil
}

// columns returns the lower-cased column names of src mapped to their original spelling.
func (l *Loader) columns(ctx context.Context, src string) (map[string]string, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT * FROM "+src+" LIMIT 0") //nolint:gosec // src is built by sourceExpr
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if _, dup := out[key]; !dup {
			out[key] = n
		}
	}
	return out, nil
}

// sourceExpr returns the DuckDB table function reading path.
func sourceExpr(path string) (string, error) {
	lit := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet(" + lit + ")", nil
	case ".csv", ".tsv", ".txt":
		return "read_csv_auto(" + lit + ", header=true, all_varchar=true)", nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

func lookupColumn(present map[string]string, aliases []string) (string, bool) {
	for _, a := range aliases {
		if name, ok := present[a]; ok {
			return name, true
		}
	}
	return "", false
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func text(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}

func number(v sql.NullString) float64 {
	s := text(v)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
