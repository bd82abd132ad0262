package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
)

// stubPricingRepo serves a fixed configuration without a database.
type stubPricingRepo struct {
	vessels []domain.Vessel
	waxes   []domain.Wax
	wicks   []domain.Wick
}

func (s *stubPricingRepo) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	return s.vessels, nil
}
func (s *stubPricingRepo) GetVesselByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	return nil, nil
}
func (s *stubPricingRepo) CreateVessel(ctx context.Context, v *domain.Vessel) error { return nil }
func (s *stubPricingRepo) UpdateVessel(ctx context.Context, v *domain.Vessel) error { return nil }
func (s *stubPricingRepo) ListWaxes(ctx context.Context) ([]domain.Wax, error)      { return s.waxes, nil }
func (s *stubPricingRepo) CreateWax(ctx context.Context, w *domain.Wax) error       { return nil }
func (s *stubPricingRepo) UpdateWax(ctx context.Context, w *domain.Wax) error       { return nil }
func (s *stubPricingRepo) ListWicks(ctx context.Context) ([]domain.Wick, error)     { return s.wicks, nil }
func (s *stubPricingRepo) CreateWick(ctx context.Context, w *domain.Wick) error     { return nil }
func (s *stubPricingRepo) UpdateWick(ctx context.Context, w *domain.Wick) error     { return nil }

func testRepos(repo *stubPricingRepo) *repository.Repositories {
	return &repository.Repositories{PricingConfig: repo}
}

// fakeShopify answers the catalog query with two products of three variants
// each (all priced 0.00 so every variant needs an update) and echoes bulk
// updates back as fully applied.
func fakeShopify(t *testing.T, bulkCalls *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.Unmarshal(body, &req))

		w.Header().Set("Content-Type", "application/json")

		if strings.Contains(req.Query, "productVariantsBulkUpdate") {
			*bulkCalls++
			variants := req.Variables["variants"].([]interface{})
			applied := make([]map[string]string, 0, len(variants))
			for _, v := range variants {
				m := v.(map[string]interface{})
				applied = append(applied, map[string]string{
					"id":    m["id"].(string),
					"price": m["price"].(string),
				})
			}
			resp := map[string]interface{}{
				"data": map[string]interface{}{
					"productVariantsBulkUpdate": map[string]interface{}{
						"productVariants": applied,
						"userErrors":      []interface{}{},
					},
				},
			}
			json.NewEncoder(w).Encode(resp)
			return
		}

		// Catalog page: one page, two products
		type variantNode struct {
			ID    string `json:"id"`
			SKU   string `json:"sku"`
			Price string `json:"price"`
		}
		products := map[string][]variantNode{
			"gid://shopify/Product/1": {
				{ID: "gid://shopify/ProductVariant/11", SKU: "mason-jar-16oz-soy-cotton", Price: "0.00"},
				{ID: "gid://shopify/ProductVariant/12", SKU: "mason-jar-16oz-soy-hemp", Price: "0.00"},
				{ID: "gid://shopify/ProductVariant/13", SKU: "mason-jar-16oz-soy-wood", Price: "0.00"},
			},
			"gid://shopify/Product/2": {
				{ID: "gid://shopify/ProductVariant/21", SKU: "amber-tin-8oz-soy-cotton", Price: "0.00"},
				{ID: "gid://shopify/ProductVariant/22", SKU: "amber-tin-8oz-soy-hemp", Price: "0.00"},
				{ID: "gid://shopify/ProductVariant/23", SKU: "amber-tin-8oz-soy-wood", Price: "0.00"},
			},
		}

		edges := []interface{}{}
		for pid, vars := range products {
			vEdges := []interface{}{}
			for _, v := range vars {
				vEdges = append(vEdges, map[string]interface{}{"node": v})
			}
			edges = append(edges, map[string]interface{}{
				"node": map[string]interface{}{
					"id":       pid,
					"variants": map[string]interface{}{"edges": vEdges},
				},
			})
		}
		resp := map[string]interface{}{
			"data": map[string]interface{}{
				"products": map[string]interface{}{
					"pageInfo": map[string]interface{}{"hasNextPage": false, "endCursor": ""},
					"edges":    edges,
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func syncTestConfig() *stubPricingRepo {
	return &stubPricingRepo{
		vessels: []domain.Vessel{
			{ID: uuid.New(), Name: "Mason Jar", SizeOz: 16, BaseCostCents: 300, MarginPct: 20, Status: domain.VesselStatusEnabled},
			{ID: uuid.New(), Name: "Amber Tin", SizeOz: 8, BaseCostCents: 200, MarginPct: 20, Status: domain.VesselStatusEnabled},
		},
		waxes: []domain.Wax{
			{ID: uuid.New(), Name: "Soy", PricePerOzCents: 50},
		},
		wicks: []domain.Wick{
			{ID: uuid.New(), Name: "Cotton", CostCents: 25},
			{ID: uuid.New(), Name: "Hemp", CostCents: 35},
			{ID: uuid.New(), Name: "Wood", CostCents: 90},
		},
	}
}

func TestSyncPrices_UpdatesAllChangedVariants(t *testing.T) {
	bulkCalls := 0
	srv := fakeShopify(t, &bulkCalls)
	defer srv.Close()

	client := shopify.NewClientWithBaseURL(srv.URL, config.ShopifyConfig{
		StoreURL:   "test.myshopify.com",
		AdminToken: "test-token",
		APIVersion: "2024-10",
	}, zap.NewNop())

	svc := NewPriceSyncService(client, testRepos(syncTestConfig()), zap.NewNop())
	report, err := svc.SyncPrices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, report.VariantsUpdated)
	assert.Equal(t, 2, bulkCalls, "expected one bulk call per parent product")
	assert.Equal(t, 3, report.ProviderCalls, "one catalog fetch plus two bulk updates")
	assert.Empty(t, report.Errors)
}

func TestSyncPrices_SkipsDisabledVessels(t *testing.T) {
	repo := syncTestConfig()
	repo.vessels[1].Status = domain.VesselStatusDisabled

	bulkCalls := 0
	srv := fakeShopify(t, &bulkCalls)
	defer srv.Close()

	client := shopify.NewClientWithBaseURL(srv.URL, config.ShopifyConfig{
		StoreURL:   "test.myshopify.com",
		AdminToken: "test-token",
		APIVersion: "2024-10",
	}, zap.NewNop())

	svc := NewPriceSyncService(client, testRepos(repo), zap.NewNop())
	report, err := svc.SyncPrices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.VariantsUpdated, "only the enabled vessel's variants")
	assert.Equal(t, 1, bulkCalls)
}

func TestSyncPrices_EmptyConfigIsNoOp(t *testing.T) {
	bulkCalls := 0
	srv := fakeShopify(t, &bulkCalls)
	defer srv.Close()

	client := shopify.NewClientWithBaseURL(srv.URL, config.ShopifyConfig{
		StoreURL:   "test.myshopify.com",
		AdminToken: "test-token",
		APIVersion: "2024-10",
	}, zap.NewNop())

	svc := NewPriceSyncService(client, testRepos(&stubPricingRepo{}), zap.NewNop())
	report, err := svc.SyncPrices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.VariantsUpdated)
	assert.Equal(t, 0, report.ProviderCalls, "no catalog fetch when nothing is priced")
	assert.Equal(t, 0, bulkCalls)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "13.58", formatPrice(1358))
	assert.Equal(t, "0.05", formatPrice(5))
	assert.Equal(t, "20.00", formatPrice(2000))
	assert.Equal(t, "0.00", formatPrice(0))
}

func TestSyncPrices_SkipsUnchangedPrices(t *testing.T) {
	repo := syncTestConfig()

	// Serve the catalog with prices already matching the configuration
	var bulkCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		_ = json.Unmarshal(body, &req)
		w.Header().Set("Content-Type", "application/json")

		if strings.Contains(req.Query, "productVariantsBulkUpdate") {
			bulkCalls++
			fmt.Fprint(w, `{"data":{"productVariantsBulkUpdate":{"productVariants":[],"userErrors":[]}}}`)
			return
		}

		// price for Mason Jar 16oz Soy Cotton: (300 + 25 + 50*16) * 1.2 = 1350
		fmt.Fprint(w, `{"data":{"products":{"pageInfo":{"hasNextPage":false,"endCursor":""},"edges":[
			{"node":{"id":"gid://shopify/Product/1","variants":{"edges":[
				{"node":{"id":"gid://shopify/ProductVariant/11","sku":"mason-jar-16oz-soy-cotton","price":"13.50"}}
			]}}}
		]}}}`)
	}))
	defer srv.Close()

	client := shopify.NewClientWithBaseURL(srv.URL, config.ShopifyConfig{
		StoreURL:   "test.myshopify.com",
		AdminToken: "test-token",
		APIVersion: "2024-10",
	}, zap.NewNop())

	svc := NewPriceSyncService(client, testRepos(repo), zap.NewNop())
	report, err := svc.SyncPrices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.VariantsUpdated)
	assert.Equal(t, 0, bulkCalls, "matching price must not trigger an update")
}
