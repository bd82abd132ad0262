package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
)

// HandleListLocations handles GET /v1/shopify/locations
func HandleListLocations(client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := service.NewProductService(client, repos, logger)
		locations, err := svc.ListLocations(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"locations": locations})
	}
}
