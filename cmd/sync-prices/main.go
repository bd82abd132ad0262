package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository/postgres"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
)

// Runs a bulk price propagation from the command line. Same code path as
// POST /v1/pricing/sync.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	client := shopify.NewClient(cfg.Shopify, logger)

	svc := service.NewPriceSyncService(client, repos, logger)
	report, err := svc.SyncPrices(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Price sync failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Price sync complete\n")
	fmt.Printf("  Variants updated: %d\n", report.VariantsUpdated)
	fmt.Printf("  Provider calls:   %d\n", report.ProviderCalls)
	if len(report.Errors) > 0 {
		fmt.Printf("  Errors (%d):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("    %s: %s\n", e.SKU, e.Message)
		}
		os.Exit(1)
	}
}
