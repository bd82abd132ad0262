package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/api/middleware"
	"github.com/Tobiscuit/threechicks-admin-api/internal/appsync"
)

// The storefront proxy routes forward admin actions to the AppSync backend.
// The admin secret lives only in this process; browsers never see it.

func requireAppSync(c *gin.Context, client *appsync.Client) bool {
	if !client.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storefront backend not configured"})
		return false
	}
	return true
}

func adminEmail(c *gin.Context) string {
	if admin, ok := middleware.GetAdminFromContext(c); ok {
		return admin.Email
	}
	return ""
}

// HandleGetFeatureFlag handles GET /v1/storefront/feature-flags/:key
func HandleGetFeatureFlag(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		data, err := client.Query(c.Request.Context(), appsync.GetFeatureFlagQuery, map[string]interface{}{
			"key": c.Param("key"),
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

type setFeatureFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// HandleSetFeatureFlag handles PUT /v1/storefront/feature-flags/:key
func HandleSetFeatureFlag(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		var req setFeatureFlagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		data, err := client.Mutate(c.Request.Context(), appsync.SetFeatureFlagMutation, map[string]interface{}{
			"key":       c.Param("key"),
			"value":     *req.Value,
			"updatedBy": adminEmail(c),
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

// HandleGetMagicRequestConfig handles GET /v1/storefront/magic-request-config
func HandleGetMagicRequestConfig(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		data, err := client.Query(c.Request.Context(), appsync.GetMagicRequestConfigQuery, nil)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

// HandleSetMagicRequestConfig handles PUT /v1/storefront/magic-request-config
func HandleSetMagicRequestConfig(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		var req appsync.MagicRequestConfigInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		data, err := client.Mutate(c.Request.Context(), appsync.SetMagicRequestConfigMutation, map[string]interface{}{
			"input": req,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

// HandleListCommunityCreations handles GET /v1/storefront/community-creations
func HandleListCommunityCreations(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		variables := map[string]interface{}{"limit": 50}
		if next := c.Query("next_token"); next != "" {
			variables["nextToken"] = next
		}
		data, err := client.Query(c.Request.Context(), appsync.ListCommunityCreationsQuery, variables)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

type rejectCandleRequest struct {
	Reason string `json:"reason"`
}

// HandleRejectCandle handles POST /v1/storefront/community-creations/:id/reject
func HandleRejectCandle(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		var req rejectCandleRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		variables := map[string]interface{}{
			"id":        c.Param("id"),
			"moderator": adminEmail(c),
		}
		if req.Reason != "" {
			variables["reason"] = req.Reason
		}
		data, err := client.Mutate(c.Request.Context(), appsync.RejectCandleMutation, variables)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

// HandleListFragrances handles GET /v1/storefront/fragrances
func HandleListFragrances(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		data, err := client.Query(c.Request.Context(), appsync.ListFragrancesQuery, nil)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

// HandleCreateFragrance handles POST /v1/storefront/fragrances
func HandleCreateFragrance(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		var req appsync.FragranceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		data, err := client.Mutate(c.Request.Context(), appsync.CreateFragranceMutation, map[string]interface{}{
			"input": req,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusCreated, data)
	}
}

// HandleUpdateFragrance handles PUT /v1/storefront/fragrances/:id
func HandleUpdateFragrance(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		var req appsync.FragranceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		data, err := client.Mutate(c.Request.Context(), appsync.UpdateFragranceMutation, map[string]interface{}{
			"id":    c.Param("id"),
			"input": req,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}

// HandleDeleteFragrance handles DELETE /v1/storefront/fragrances/:id
func HandleDeleteFragrance(client *appsync.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAppSync(c, client) {
			return
		}
		data, err := client.Mutate(c.Request.Context(), appsync.DeleteFragranceMutation, map[string]interface{}{
			"id": c.Param("id"),
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}
		writeSuccess(c, http.StatusOK, data)
	}
}
