package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

// writeSuccess wraps a raw GraphQL data payload in the proxy response
// envelope.
func writeSuccess(c *gin.Context, status int, data json.RawMessage) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// writeError maps typed service errors onto HTTP responses. Provider failures
// surface as 502 carrying the raw provider text, so an upstream outage is
// distinguishable from our own 500s and debuggable from the response alone.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		resp := gin.H{"error": e.Error()}
		if len(e.Fields) > 0 {
			resp["fields"] = e.Fields
		}
		c.JSON(http.StatusBadRequest, resp)
	case *errors.ErrConfigurationNotFound:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	case *errors.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
	case *errors.ErrGraphQL:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.First()})
	case *errors.ErrProvider:
		logger.Error("Provider request failed", zap.String("provider", e.Provider), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": e.Error()})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
