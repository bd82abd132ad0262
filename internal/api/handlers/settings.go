package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
)

// HandleGetSetting handles GET /v1/settings/:key for the authenticated admin
func HandleGetSetting(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		setting, err := repos.UserSetting.Get(c.Request.Context(), adminEmail(c), c.Param("key"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": setting.Key, "value": setting.Value, "updated_at": setting.UpdatedAt})
	}
}

type setSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// HandleSetSetting handles PUT /v1/settings/:key for the authenticated admin
func HandleSetSetting(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setSettingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		setting := domain.UserSetting{
			Email: adminEmail(c),
			Key:   c.Param("key"),
			Value: req.Value,
		}
		if err := repos.UserSetting.Upsert(c.Request.Context(), &setting); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": setting.Key, "value": setting.Value})
	}
}
