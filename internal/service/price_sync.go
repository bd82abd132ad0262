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
)

// Shopify rejects oversized bulk variant inputs; stay well under the limit.
const bulkUpdateBatchSize = 100

// SyncItemError is one provider-reported failure for a single variant.
// Partial success is expected; failures are collected, never fatal.
type SyncItemError struct {
	SKU     string `json:"sku"`
	Message string `json:"message"`
}

// SyncReport summarizes a bulk price propagation run.
type SyncReport struct {
	VariantsUpdated int             `json:"variants_updated"`
	ProviderCalls   int             `json:"provider_calls"`
	Errors          []SyncItemError `json:"errors"`
}

type priceSyncService struct {
	client *shopify.Client
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewPriceSyncService creates a new price sync service
func NewPriceSyncService(client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) *priceSyncService {
	return &priceSyncService{
		client: client,
		repos:  repos,
		logger: logger,
	}
}

type catalogVariant struct {
	ProductID string
	VariantID string
	SKU       string
	Price     string
}

// SyncPrices recomputes every variant's price from the current configuration
// and pushes changed prices to Shopify, batched per parent product. Disabled
// vessels are skipped. Per-item userErrors go into the report; one product's
// failure does not roll back another's.
func (s *priceSyncService) SyncPrices(ctx context.Context) (*SyncReport, error) {
	cfg, err := LoadPricingConfig(ctx, s.repos, s.logger)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Desired price per SKU, enabled vessels only
	desired := make(map[string]int)
	for _, v := range cfg.Vessels {
		if v.Status == domain.VesselStatusDisabled {
			continue
		}
		for _, variant := range cfg.VariantsForVessel(v) {
			desired[variant.SKU] = variant.PriceCents
		}
	}

	report := &SyncReport{Errors: []SyncItemError{}}
	if len(desired) == 0 {
		return report, nil
	}

	catalog, calls, err := s.fetchCatalogVariants(ctx)
	report.ProviderCalls += calls
	if err != nil {
		return report, err
	}

	// Group updates by parent product to minimize round-trips
	updatesByProduct := make(map[string][]shopify.ProductVariantsBulkInput)
	skuByVariantID := make(map[string]string)
	for _, cv := range catalog {
		priceCents, ok := desired[cv.SKU]
		if !ok {
			continue
		}
		price := formatPrice(priceCents)
		if cv.Price == price {
			continue
		}
		id := cv.VariantID
		updatesByProduct[cv.ProductID] = append(updatesByProduct[cv.ProductID], shopify.ProductVariantsBulkInput{
			ID:    &id,
			Price: &price,
		})
		skuByVariantID[cv.VariantID] = cv.SKU
	}

	for productID, updates := range updatesByProduct {
		for start := 0; start < len(updates); start += bulkUpdateBatchSize {
			end := start + bulkUpdateBatchSize
			if end > len(updates) {
				end = len(updates)
			}
			batch := updates[start:end]

			updated, userErrors, err := s.bulkUpdate(ctx, productID, batch)
			report.ProviderCalls++
			if err != nil {
				s.logger.Warn("Bulk price update failed for product", zap.String("product_id", productID), zap.Error(err))
				for _, u := range batch {
					report.Errors = append(report.Errors, SyncItemError{SKU: skuByVariantID[*u.ID], Message: err.Error()})
				}
				continue
			}
			report.VariantsUpdated += updated
			for _, ue := range userErrors {
				report.Errors = append(report.Errors, SyncItemError{Message: ue.Message})
			}
		}
	}

	s.logger.Info("Price sync complete",
		zap.Int("variants_updated", report.VariantsUpdated),
		zap.Int("provider_calls", report.ProviderCalls),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

func (s *priceSyncService) bulkUpdate(ctx context.Context, productID string, variants []shopify.ProductVariantsBulkInput) (int, []shopify.UserError, error) {
	variables := map[string]interface{}{
		"productId": productID,
		"variants":  variants,
	}
	resp, err := s.client.Execute(ctx, shopify.ProductVariantsBulkUpdateMutation, variables)
	if err != nil {
		return 0, nil, err
	}

	var result struct {
		ProductVariantsBulkUpdate struct {
			ProductVariants []struct {
				ID    string `json:"id"`
				Price string `json:"price"`
			} `json:"productVariants"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return 0, nil, fmt.Errorf("failed to parse bulk update response: %w", err)
	}

	return len(result.ProductVariantsBulkUpdate.ProductVariants), result.ProductVariantsBulkUpdate.UserErrors, nil
}

// fetchCatalogVariants pages through the product catalog and flattens every
// variant with its parent product id.
func (s *priceSyncService) fetchCatalogVariants(ctx context.Context) ([]catalogVariant, int, error) {
	var out []catalogVariant
	calls := 0
	var after *string

	for {
		variables := map[string]interface{}{
			"first": 50,
		}
		if after != nil {
			variables["after"] = *after
		}

		resp, err := s.client.Execute(ctx, shopify.ProductsWithVariantsQuery, variables)
		calls++
		if err != nil {
			return out, calls, fmt.Errorf("fetch catalog: %w", err)
		}

		var result struct {
			Products struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						ID       string `json:"id"`
						Variants struct {
							Edges []struct {
								Node struct {
									ID    string `json:"id"`
									SKU   string `json:"sku"`
									Price string `json:"price"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"variants"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return out, calls, fmt.Errorf("parse catalog response: %w", err)
		}

		for _, edge := range result.Products.Edges {
			for _, ve := range edge.Node.Variants.Edges {
				if ve.Node.SKU == "" {
					continue
				}
				out = append(out, catalogVariant{
					ProductID: edge.Node.ID,
					VariantID: ve.Node.ID,
					SKU:       ve.Node.SKU,
					Price:     ve.Node.Price,
				})
			}
		}

		if !result.Products.PageInfo.HasNextPage {
			break
		}
		cursor := result.Products.PageInfo.EndCursor
		after = &cursor
	}

	return out, calls, nil
}

// formatPrice renders integer cents as the decimal string Shopify expects.
func formatPrice(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// ComputeVariantPreview enumerates the full variant matrix for the admin UI.
func ComputeVariantPreview(cfg *pricing.Config) []pricing.Variant {
	return cfg.EnumerateVariants()
}
