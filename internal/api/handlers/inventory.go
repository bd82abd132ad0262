package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
)

type quickUpdateRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// HandleInventoryQuickUpdate handles PUT /v1/inventory/:itemID. Adjusts
// Shopify by delta and keeps the mirror in step; the response carries the
// final mirror entry even when the provider call failed (status "error").
func HandleInventoryQuickUpdate(cfg *config.Config, client *shopify.Client, mirror *redisx.MirrorStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
		if err != nil || itemID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory item id"})
			return
		}

		var req quickUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		svc := service.NewInventoryService(client, mirror, cfg.Shopify, logger)
		entry, err := svc.QuickUpdate(c.Request.Context(), itemID, req.Delta)
		if err != nil {
			if entry != nil {
				// Mirror recorded the failure; report it with the entry attached
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "entry": entry})
				return
			}
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entry": entry})
	}
}

// HandleGetInventoryItem handles GET /v1/inventory/:itemID, reading the
// mirror only. A 404 here just means the item has never been mirrored.
func HandleGetInventoryItem(mirror *redisx.MirrorStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
		if err != nil || itemID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory item id"})
			return
		}

		entry, err := mirror.Get(c.Request.Context(), itemID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if entry == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not mirrored"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entry": entry})
	}
}
