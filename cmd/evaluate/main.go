// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package main scores the collaborative model offline. Each user's
// interactions are split chronologically 80/20; the model is trained on the
// first part and its top-K recommendations are checked against the rest.
//
//	shopwise-evaluate --products ./data/products.csv --interactions ./data/orders.csv --k 5,10
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/config"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
)

type options struct {
	products     string
	interactions string
	ks           []int
	jsonOutput   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "shopwise-evaluate",
		Short:        "Report HitRate, Precision, Recall and Coverage at K for the collaborative model",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			_ = godotenv.Load()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range opts.ks {
				if k <= 0 {
					return fmt.Errorf("--k values must be positive, got %d", k)
				}
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.products, "products", "", "product catalog file (overrides PRODUCTS_PATH)")
	f.StringVar(&opts.interactions, "interactions", "", "interaction file (overrides INTERACTIONS_PATH)")
	f.IntSliceVar(&opts.ks, "k", []int{5, 10}, "cutoffs to evaluate")
	f.BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")
	return cmd
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if opts.products != "" {
		cfg.Catalog.ProductsPath = opts.products
	}
	if opts.interactions != "" {
		cfg.Catalog.InteractionsPath = opts.interactions
	}
	logging.Init(cfg.LoggingConfig())

	loader, err := catalog.NewLoader(cfg.Catalog.DuckDBPath)
	if err != nil {
		return fmt.Errorf("open catalog loader: %w", err)
	}
	defer func() { _ = loader.Close() }()

	products, cols, err := loader.LoadProducts(ctx, cfg.Catalog.ProductsPath)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	interactions, err := loader.LoadInteractions(ctx, cfg.Catalog.InteractionsPath)
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}
	if len(interactions) == 0 {
		return fmt.Errorf("no interactions in %q, nothing to evaluate", cfg.Catalog.InteractionsPath)
	}

	results := make([]*recommend.EvaluationResult, 0, len(opts.ks))
	for _, k := range opts.ks {
		res, err := recommend.Evaluate(ctx, cfg.EngineConfig(), products, cols, interactions, k)
		if err != nil {
			return fmt.Errorf("evaluate k=%d: %w", k, err)
		}
		results = append(results, res)
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return printTable(out, results)
}

func printTable(out io.Writer, results []*recommend.EvaluationResult) error {
	if _, err := fmt.Fprintf(out, "%-4s %10s %10s %10s %10s %8s\n", "K", "HitRate", "Precision", "Recall", "Coverage", "Users"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(out, "%-4d %10.4f %10.4f %10.4f %10.4f %8d\n",
			r.K, r.HitRate, r.Precision, r.Recall, r.Coverage, r.UsersEvaluated); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("evaluation failed")
		stop()
		os.Exit(1)
	}
}
