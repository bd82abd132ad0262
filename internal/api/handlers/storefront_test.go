package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/appsync"
	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
)

func storefrontRouter(client *appsync.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	router := gin.New()
	router.GET("/v1/storefront/feature-flags/:key", HandleGetFeatureFlag(client, logger))
	router.PUT("/v1/storefront/feature-flags/:key", HandleSetFeatureFlag(client, logger))
	return router
}

func appSyncClient(url string) *appsync.Client {
	return appsync.NewClient(config.AppSyncConfig{
		URL:         url,
		APIKey:      "api-key",
		AdminSecret: "admin-secret",
	}, zap.NewNop())
}

func TestFeatureFlagProxy_WrapsDataInEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"getFeatureFlag":{"key":"maintenance_mode","value":true}}}`)
	}))
	defer backend.Close()

	router := storefrontRouter(appSyncClient(backend.URL))
	req := httptest.NewRequest(http.MethodGet, "/v1/storefront/feature-flags/maintenance_mode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			GetFeatureFlag struct {
				Key   string `json:"key"`
				Value bool   `json:"value"`
			} `json:"getFeatureFlag"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "maintenance_mode", resp.Data.GetFeatureFlag.Key)
	assert.True(t, resp.Data.GetFeatureFlag.Value)
}

func TestFeatureFlagProxy_ProviderFailureCarriesBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom goes the resolver", http.StatusInternalServerError)
	}))
	defer backend.Close()

	router := storefrontRouter(appSyncClient(backend.URL))
	req := httptest.NewRequest(http.MethodGet, "/v1/storefront/feature-flags/maintenance_mode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "boom goes the resolver")
}

func TestFeatureFlagProxy_GraphQLErrorIs400(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"errors":[{"message":"flag not found"},{"message":"second"}]}`)
	}))
	defer backend.Close()

	router := storefrontRouter(appSyncClient(backend.URL))
	req := httptest.NewRequest(http.MethodGet, "/v1/storefront/feature-flags/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "flag not found")
	assert.NotContains(t, w.Body.String(), "second")
}

func TestSetFeatureFlag_MutationCarriesAdminSecret(t *testing.T) {
	var gotSecret string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("x-admin-secret")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"setFeatureFlag":{"key":"maintenance_mode","value":false}}}`)
	}))
	defer backend.Close()

	router := storefrontRouter(appSyncClient(backend.URL))
	req := httptest.NewRequest(http.MethodPut, "/v1/storefront/feature-flags/maintenance_mode", strings.NewReader(`{"value":false}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-secret", gotSecret)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestFeatureFlagProxy_UnconfiguredIs503(t *testing.T) {
	router := storefrontRouter(appsync.NewClient(config.AppSyncConfig{}, zap.NewNop()))
	req := httptest.NewRequest(http.MethodGet, "/v1/storefront/feature-flags/maintenance_mode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
