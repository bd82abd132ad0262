package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository/postgres"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
)

// Prints the full derived variant matrix so an operator can eyeball prices
// before running a sync.
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

	pricingCfg, err := service.LoadPricingConfig(context.Background(), repos, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load pricing configuration: %v\n", err)
		os.Exit(1)
	}
	if err := pricingCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Pricing configuration invalid: %v\n", err)
		os.Exit(1)
	}

	variants := pricingCfg.EnumerateVariants()
	fmt.Printf("%-45s %-20s %-15s %-15s %10s\n", "SKU", "Vessel", "Wax", "Wick", "Price")
	for _, v := range variants {
		fmt.Printf("%-45s %-20s %-15s %-15s %7d.%02d\n",
			v.SKU,
			fmt.Sprintf("%s (%doz)", v.VesselName, v.SizeOz),
			v.WaxName,
			v.WickName,
			v.PriceCents/100, v.PriceCents%100,
		)
	}
	fmt.Printf("\nTotal: %d variants\n", len(variants))
}
