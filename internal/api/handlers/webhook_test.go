package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// client and mirror stay nil: the paths under test return before using them
	router.POST("/webhooks/shopify/inventory", HandleInventoryWebhook(cfg, nil, nil, zap.NewNop()))
	return router
}

func TestInventoryWebhook_RejectsBadSignature(t *testing.T) {
	cfg := &config.Config{Shopify: config.ShopifyConfig{WebhookSecret: "whsec"}}
	router := webhookRouter(cfg)

	body := []byte(`{"inventory_item_id": 123, "available": 5}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/inventory", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", "bm90LXRoZS1yaWdodC1zaWduYXR1cmU=")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInventoryWebhook_RejectsMissingSignature(t *testing.T) {
	cfg := &config.Config{Shopify: config.ShopifyConfig{WebhookSecret: "whsec"}}
	router := webhookRouter(cfg)

	body := []byte(`{"inventory_item_id": 123}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/inventory", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInventoryWebhook_UnconfiguredSecretIs503(t *testing.T) {
	cfg := &config.Config{}
	router := webhookRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/inventory", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInventoryWebhook_UnrecognizedShapeIsAccepted(t *testing.T) {
	// Valid signature, useless payload: 200 so Shopify stops retrying
	cfg := &config.Config{Shopify: config.ShopifyConfig{WebhookSecret: "whsec"}}
	router := webhookRouter(cfg)

	body := []byte(`{"something_else": true}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/inventory", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signBody("whsec", body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestVerifyShopifyHMAC(t *testing.T) {
	body := []byte(`{"inventory_item_id": 1}`)

	assert.True(t, verifyShopifyHMAC("secret", body, signBody("secret", body)))
	assert.True(t, verifyShopifyHMAC("secret", body, " "+signBody("secret", body)+" "), "header whitespace is tolerated")
	assert.False(t, verifyShopifyHMAC("secret", body, signBody("other", body)))
	assert.False(t, verifyShopifyHMAC("secret", []byte(`tampered`), signBody("secret", body)))
	assert.False(t, verifyShopifyHMAC("", body, signBody("", body)), "empty secret never verifies")
	assert.False(t, verifyShopifyHMAC("secret", body, ""))
}
