package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/pricing"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
)

// LoadPricingConfig assembles the full pricing configuration from the three
// component tables. Variants are always derived from this; they are never
// read back from Shopify.
func LoadPricingConfig(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) (*pricing.Config, error) {
	vessels, err := repos.PricingConfig.ListVessels(ctx)
	if err != nil {
		logger.Error("Failed to load vessels", zap.Error(err))
		return nil, err
	}
	waxes, err := repos.PricingConfig.ListWaxes(ctx)
	if err != nil {
		logger.Error("Failed to load waxes", zap.Error(err))
		return nil, err
	}
	wicks, err := repos.PricingConfig.ListWicks(ctx)
	if err != nil {
		logger.Error("Failed to load wicks", zap.Error(err))
		return nil, err
	}

	return &pricing.Config{Vessels: vessels, Waxes: waxes, Wicks: wicks}, nil
}
