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

// Lists the store's fulfillment locations. Use the GID of the main location
// as SHOPIFY_LOCATION_ID for inventory quick updates.
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

	svc := service.NewProductService(client, repos, logger)
	locations, err := svc.ListLocations(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list locations: %v\n", err)
		os.Exit(1)
	}

	for _, loc := range locations {
		fmt.Printf("%s\n", loc["id"])
		fmt.Printf("  Name:   %v\n", loc["name"])
		fmt.Printf("  Active: %v\n", loc["is_active"])
		fmt.Printf("  Where:  %v, %v, %v\n", loc["city"], loc["province"], loc["country"])
	}
	fmt.Printf("\nTotal: %d locations\n", len(locations))
}
