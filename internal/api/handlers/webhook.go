package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

func verifyShopifyHMAC(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}

// HandleInventoryWebhook handles POST /webhooks/shopify/inventory.
// Configure Shopify webhook topic: inventory_levels/update.
// Verified events update the Redis mirror and fan out to SSE subscribers.
// Unrecognized payload shapes return 200 so Shopify stops retrying them.
func HandleInventoryWebhook(cfg *config.Config, client *shopify.Client, mirror *redisx.MirrorStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := strings.TrimSpace(cfg.Shopify.WebhookSecret)
		if secret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shopify webhook not configured"})
			return
		}

		// Read raw body (Shopify HMAC is computed over raw bytes)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		hmacHeader := c.GetHeader("X-Shopify-Hmac-Sha256")
		if !verifyShopifyHMAC(secret, bodyBytes, hmacHeader) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
			return
		}

		event, err := service.NormalizeInventoryEvent(bodyBytes)
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				// Return 200 so Shopify doesn't keep retrying a shape we can't use.
				logger.Warn("Inventory webhook: unrecognized payload shape", zap.Error(err))
				c.JSON(http.StatusOK, gin.H{"ok": true, "status": "ignored"})
				return
			}
			logger.Error("Inventory webhook: normalization failed", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ok": true, "status": "error"})
			return
		}

		svc := service.NewInventoryService(client, mirror, cfg.Shopify, logger)
		entry, err := svc.IngestWebhookEvent(c.Request.Context(), *event)
		if err != nil {
			logger.Error("Inventory webhook: mirror write failed",
				zap.Int64("inventory_item_id", event.InventoryItemID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mirror write failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":                true,
			"status":            "updated",
			"inventory_item_id": entry.InventoryItemID,
			"version":           entry.Version,
			"topic":             c.GetHeader("X-Shopify-Topic"),
		})
	}
}
