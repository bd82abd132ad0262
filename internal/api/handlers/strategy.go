package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
)

// Strategy scope is "global" unless the caller asks for their personal copy.
func strategyScope(c *gin.Context) string {
	if c.Query("scope") == "personal" {
		return adminEmail(c)
	}
	return "global"
}

// HandleGetStrategy handles GET /v1/strategy
func HandleGetStrategy(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := service.NewStrategyService(repos, rdb, logger)
		entry, err := svc.Get(c.Request.Context(), strategyScope(c))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scope":      entry.Scope,
			"content":    entry.Content,
			"updated_by": entry.UpdatedBy,
			"updated_at": entry.UpdatedAt,
		})
	}
}

type setStrategyRequest struct {
	Content string `json:"content" binding:"required"`
}

// HandleSetStrategy handles PUT /v1/strategy
func HandleSetStrategy(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setStrategyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		svc := service.NewStrategyService(repos, rdb, logger)
		entry, err := svc.Set(c.Request.Context(), strategyScope(c), req.Content, adminEmail(c))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scope":      entry.Scope,
			"content":    entry.Content,
			"updated_by": entry.UpdatedBy,
		})
	}
}
