package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/pricing"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type productService struct {
	client *shopify.Client
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) *productService {
	return &productService{
		client: client,
		repos:  repos,
		logger: logger,
	}
}

// CreateVesselProduct creates the Shopify product backing a new vessel: one
// product, one variant per (wax x wick) combination, priced from the current
// configuration. Returns the new product GID.
func (s *productService) CreateVesselProduct(ctx context.Context, vessel domain.Vessel) (string, error) {
	cfg, err := LoadPricingConfig(ctx, s.repos, s.logger)
	if err != nil {
		return "", err
	}
	if len(cfg.Waxes) == 0 || len(cfg.Wicks) == 0 {
		return "", &errors.ErrValidation{Message: "cannot create product: configure at least one wax and one wick first"}
	}

	title := fmt.Sprintf("%s Candle (%doz)", vessel.Name, vessel.SizeOz)
	productType := "Candle"
	status := "ACTIVE"
	input := shopify.ProductInput{
		Title:       title,
		ProductType: &productType,
		Status:      &status,
		Tags:        []string{"magic-request", fmt.Sprintf("vessel:%s", pricing.Slug(vessel.Name))},
	}

	resp, err := s.client.Execute(ctx, shopify.ProductCreateMutation, map[string]interface{}{"input": input})
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	var result struct {
		ProductCreate struct {
			Product struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("failed to parse product create response: %w", err)
	}
	if len(result.ProductCreate.UserErrors) > 0 {
		return "", fmt.Errorf("shopify user errors: %v", result.ProductCreate.UserErrors)
	}
	productID := result.ProductCreate.Product.ID

	variants := cfg.VariantsForVessel(vessel)
	inputs := make([]shopify.ProductVariantsBulkInput, 0, len(variants))
	tracked := true
	for _, v := range variants {
		price := formatPrice(v.PriceCents)
		inputs = append(inputs, shopify.ProductVariantsBulkInput{
			Price: &price,
			OptionValues: []shopify.VariantOptionValue{
				{OptionName: "Wax", Name: v.WaxName},
				{OptionName: "Wick", Name: v.WickName},
			},
			InventoryItem: &shopify.VariantInventoryInput{SKU: v.SKU, Tracked: &tracked},
		})
	}

	for start := 0; start < len(inputs); start += bulkUpdateBatchSize {
		end := start + bulkUpdateBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		if err := s.bulkCreateVariants(ctx, productID, inputs[start:end]); err != nil {
			return productID, err
		}
	}

	s.logger.Info("Created vessel product",
		zap.String("product_id", productID),
		zap.String("vessel", vessel.Name),
		zap.Int("size_oz", vessel.SizeOz),
		zap.Int("variants", len(inputs)),
	)
	return productID, nil
}

func (s *productService) bulkCreateVariants(ctx context.Context, productID string, variants []shopify.ProductVariantsBulkInput) error {
	variables := map[string]interface{}{
		"productId": productID,
		"variants":  variants,
	}
	resp, err := s.client.Execute(ctx, shopify.ProductVariantsBulkCreateMutation, variables)
	if err != nil {
		return fmt.Errorf("failed to create variants: %w", err)
	}

	var result struct {
		ProductVariantsBulkCreate struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productVariantsBulkCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse variant create response: %w", err)
	}
	if len(result.ProductVariantsBulkCreate.UserErrors) > 0 {
		return fmt.Errorf("shopify user errors: %v", result.ProductVariantsBulkCreate.UserErrors)
	}
	return nil
}

// DeleteVesselProduct is intentionally unimplemented; nothing is deleted
// automatically from the catalog.
func (s *productService) DeleteVesselProduct(ctx context.Context, vesselID string) error {
	return &errors.ErrValidation{Message: "vessel deletion is not yet implemented"}
}

// ListLocations returns the store's fulfillment locations.
func (s *productService) ListLocations(ctx context.Context) ([]map[string]interface{}, error) {
	resp, err := s.client.Execute(ctx, shopify.LocationsQuery, map[string]interface{}{"first": 20})
	if err != nil {
		return nil, err
	}

	var result struct {
		Locations struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Name     string `json:"name"`
					IsActive bool   `json:"isActive"`
					Address  struct {
						City     string `json:"city"`
						Province string `json:"province"`
						Country  string `json:"country"`
					} `json:"address"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"locations"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse locations response: %w", err)
	}

	locations := make([]map[string]interface{}, 0, len(result.Locations.Edges))
	for _, edge := range result.Locations.Edges {
		locations = append(locations, map[string]interface{}{
			"id":        edge.Node.ID,
			"name":      edge.Node.Name,
			"is_active": edge.Node.IsActive,
			"city":      edge.Node.Address.City,
			"province":  edge.Node.Address.Province,
			"country":   edge.Node.Address.Country,
		})
	}
	return locations, nil
}
