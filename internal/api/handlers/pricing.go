package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type vesselRequest struct {
	Name          string  `json:"name" binding:"required"`
	SizeOz        int     `json:"size_oz" binding:"required,gt=0"`
	BaseCostCents int     `json:"base_cost_cents" binding:"min=0"`
	MarginPct     float64 `json:"margin_pct" binding:"min=0"`
	Supplier      *string `json:"supplier"`
	Status        string  `json:"status"`
	CreateProduct bool    `json:"create_product"`
}

type waxRequest struct {
	Name            string `json:"name" binding:"required"`
	PricePerOzCents int    `json:"price_per_oz_cents" binding:"min=0"`
}

type wickRequest struct {
	Name      string `json:"name" binding:"required"`
	CostCents int    `json:"cost_cents" binding:"min=0"`
}

// HandleGetPricingConfig handles GET /v1/pricing/config
func HandleGetPricingConfig(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := service.LoadPricingConfig(c.Request.Context(), repos, logger)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"vessels": cfg.Vessels,
			"waxes":   cfg.Waxes,
			"wicks":   cfg.Wicks,
		})
	}
}

// HandleCreateVessel handles POST /v1/pricing/vessels. With create_product
// set, the backing Shopify product and its variant matrix are created too.
func HandleCreateVessel(client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req vesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		status := domain.VesselStatusEnabled
		if req.Status != "" {
			status = domain.VesselStatus(req.Status)
			if !status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "status must be enabled or disabled"})
				return
			}
		}

		vessel := domain.Vessel{
			ID:            uuid.New(),
			Name:          req.Name,
			SizeOz:        req.SizeOz,
			BaseCostCents: req.BaseCostCents,
			MarginPct:     req.MarginPct,
			Supplier:      req.Supplier,
			Status:        status,
		}
		if err := repos.PricingConfig.CreateVessel(c.Request.Context(), &vessel); err != nil {
			writeError(c, logger, err)
			return
		}

		resp := gin.H{"vessel": vessel}
		if req.CreateProduct {
			productSvc := service.NewProductService(client, repos, logger)
			productID, err := productSvc.CreateVesselProduct(c.Request.Context(), vessel)
			if err != nil {
				logger.Warn("Vessel saved but product creation failed", zap.String("vessel", vessel.Name), zap.Error(err))
				resp["product_error"] = err.Error()
			} else {
				resp["product_id"] = productID
			}
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// HandleUpdateVessel handles PUT /v1/pricing/vessels/:id
func HandleUpdateVessel(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vessel id"})
			return
		}

		var req vesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		existing, err := repos.PricingConfig.GetVesselByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		existing.Name = req.Name
		existing.SizeOz = req.SizeOz
		existing.BaseCostCents = req.BaseCostCents
		existing.MarginPct = req.MarginPct
		existing.Supplier = req.Supplier
		if req.Status != "" {
			status := domain.VesselStatus(req.Status)
			if !status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "status must be enabled or disabled"})
				return
			}
			existing.Status = status
		}

		if err := repos.PricingConfig.UpdateVessel(c.Request.Context(), existing); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vessel": existing})
	}
}

// HandleDeleteVessel handles DELETE /v1/pricing/vessels/:id. Deletion would
// orphan the Shopify product and its order history, so it is refused until a
// proper archive flow exists. Disable the vessel instead.
func HandleDeleteVessel(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeError(c, logger, &errors.ErrValidation{Message: "vessel deletion is not yet implemented; set status to disabled instead"})
	}
}

// HandleCreateWax handles POST /v1/pricing/waxes
func HandleCreateWax(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req waxRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		wax := domain.Wax{ID: uuid.New(), Name: req.Name, PricePerOzCents: req.PricePerOzCents}
		if err := repos.PricingConfig.CreateWax(c.Request.Context(), &wax); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"wax": wax})
	}
}

// HandleUpdateWax handles PUT /v1/pricing/waxes/:id
func HandleUpdateWax(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wax id"})
			return
		}

		var req waxRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		wax := domain.Wax{ID: id, Name: req.Name, PricePerOzCents: req.PricePerOzCents}
		if err := repos.PricingConfig.UpdateWax(c.Request.Context(), &wax); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wax": wax})
	}
}

// HandleCreateWick handles POST /v1/pricing/wicks
func HandleCreateWick(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		wick := domain.Wick{ID: uuid.New(), Name: req.Name, CostCents: req.CostCents}
		if err := repos.PricingConfig.CreateWick(c.Request.Context(), &wick); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"wick": wick})
	}
}

// HandleUpdateWick handles PUT /v1/pricing/wicks/:id
func HandleUpdateWick(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wick id"})
			return
		}

		var req wickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		wick := domain.Wick{ID: id, Name: req.Name, CostCents: req.CostCents}
		if err := repos.PricingConfig.UpdateWick(c.Request.Context(), &wick); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wick": wick})
	}
}

// HandleVariantPreview handles GET /v1/pricing/variants. Returns the full
// derived variant matrix without touching Shopify.
func HandleVariantPreview(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := service.LoadPricingConfig(c.Request.Context(), repos, logger)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if err := cfg.Validate(); err != nil {
			writeError(c, logger, err)
			return
		}
		variants := service.ComputeVariantPreview(cfg)
		c.JSON(http.StatusOK, gin.H{"variants": variants, "count": len(variants)})
	}
}

// HandleSyncPrices handles POST /v1/pricing/sync. Always returns the report,
// including partial failures.
func HandleSyncPrices(client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := service.NewPriceSyncService(client, repos, logger)
		report, err := svc.SyncPrices(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
