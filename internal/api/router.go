package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/api/handlers"
	"github.com/Tobiscuit/threechicks-admin-api/internal/api/middleware"
	"github.com/Tobiscuit/threechicks-admin-api/internal/appsync"
	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/genai"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
)

// Deps bundles the clients the handlers need. Everything is constructed once
// in main and threaded through here.
type Deps struct {
	Config  *config.Config
	Repos   *repository.Repositories
	Shopify *shopify.Client
	AppSync *appsync.Client
	GenAI   *genai.Client
	Mirror  *redisx.MirrorStore
	Redis   *redis.Client
	Logger  *zap.Logger
}

// NewRouter creates and configures the Gin router
func NewRouter(d Deps) *gin.Engine {
	cfg, repos, logger := d.Config, d.Repos, d.Logger

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Three Chicks Admin API",
			"endpoints": []string{
				"GET /health",
				"POST /webhooks/shopify/inventory",
				"GET /v1/pricing/config",
				"GET /v1/pricing/variants",
				"POST /v1/pricing/sync",
				"GET /v1/inventory/stream",
				"POST /v1/studio/generate-details",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Shopify webhook: inventory level changes feed the Redis mirror
	router.POST("/webhooks/shopify/inventory", handlers.HandleInventoryWebhook(cfg, d.Shopify, d.Mirror, logger))

	// API v1 routes (all require an admin token on the allow-list)
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg, repos, logger))
	{
		pricing := v1.Group("/pricing")
		{
			pricing.GET("/config", handlers.HandleGetPricingConfig(repos, logger))
			pricing.GET("/variants", handlers.HandleVariantPreview(repos, logger))
			pricing.POST("/sync", handlers.HandleSyncPrices(d.Shopify, repos, logger))

			pricing.POST("/vessels", handlers.HandleCreateVessel(d.Shopify, repos, logger))
			pricing.PUT("/vessels/:id", handlers.HandleUpdateVessel(repos, logger))
			pricing.DELETE("/vessels/:id", handlers.HandleDeleteVessel(logger))

			pricing.POST("/waxes", handlers.HandleCreateWax(repos, logger))
			pricing.PUT("/waxes/:id", handlers.HandleUpdateWax(repos, logger))

			pricing.POST("/wicks", handlers.HandleCreateWick(repos, logger))
			pricing.PUT("/wicks/:id", handlers.HandleUpdateWick(repos, logger))
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("/stream", handlers.HandleInventoryStream(d.Mirror, logger))
			inventory.POST("/stream/test", handlers.HandleInventoryStreamTest(d.Mirror, logger))
			inventory.GET("/:itemID", handlers.HandleGetInventoryItem(d.Mirror, logger))
			inventory.PUT("/:itemID", handlers.HandleInventoryQuickUpdate(cfg, d.Shopify, d.Mirror, logger))
		}

		storefront := v1.Group("/storefront")
		{
			storefront.GET("/feature-flags/:key", handlers.HandleGetFeatureFlag(d.AppSync, logger))
			storefront.PUT("/feature-flags/:key", handlers.HandleSetFeatureFlag(d.AppSync, logger))
			storefront.GET("/magic-request-config", handlers.HandleGetMagicRequestConfig(d.AppSync, logger))
			storefront.PUT("/magic-request-config", handlers.HandleSetMagicRequestConfig(d.AppSync, logger))
			storefront.GET("/community-creations", handlers.HandleListCommunityCreations(d.AppSync, logger))
			storefront.POST("/community-creations/:id/reject", handlers.HandleRejectCandle(d.AppSync, logger))
			storefront.GET("/fragrances", handlers.HandleListFragrances(d.AppSync, logger))
			storefront.POST("/fragrances", handlers.HandleCreateFragrance(d.AppSync, logger))
			storefront.PUT("/fragrances/:id", handlers.HandleUpdateFragrance(d.AppSync, logger))
			storefront.DELETE("/fragrances/:id", handlers.HandleDeleteFragrance(d.AppSync, logger))
		}

		studio := v1.Group("/studio")
		{
			studio.POST("/generate-details", handlers.HandleGenerateDetails(d.GenAI, repos, logger))
			studio.GET("/drafts/:token", handlers.HandleGetDraft(d.GenAI, repos, logger))
			studio.POST("/rewrite-description", handlers.HandleRewriteDescription(d.GenAI, repos, logger))
			studio.GET("/revisions/:productID", handlers.HandleListRevisions(d.GenAI, repos, logger))
		}

		v1.GET("/strategy", handlers.HandleGetStrategy(repos, d.Redis, logger))
		v1.PUT("/strategy", handlers.HandleSetStrategy(repos, d.Redis, logger))

		v1.GET("/shopify/locations", handlers.HandleListLocations(d.Shopify, repos, logger))

		v1.GET("/settings/:key", handlers.HandleGetSetting(repos, logger))
		v1.PUT("/settings/:key", handlers.HandleSetSetting(repos, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
