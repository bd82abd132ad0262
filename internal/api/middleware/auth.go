package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
)

const AdminContextKey = "admin"

// AuthMiddleware authenticates requests using admin bearer tokens. A valid
// token whose email has dropped off the allow-list gets 403, not 401; the
// caller should know the token itself is fine.
func AuthMiddleware(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		admin, err := repos.AdminToken.GetByToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Failed to authenticate admin token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if !cfg.IsEmailAuthorized(admin.Email) {
			logger.Warn("Token valid but email not on allow-list", zap.String("email", admin.Email))
			c.JSON(http.StatusForbidden, gin.H{"error": "account is not authorized for admin access"})
			c.Abort()
			return
		}

		c.Set(AdminContextKey, admin)
		c.Next()
	}
}

// extractToken reads the bearer token, falling back to the access_token query
// parameter for EventSource clients, which cannot set headers.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Query("access_token"))
}

// GetAdminFromContext retrieves the authenticated admin from the Gin context
func GetAdminFromContext(c *gin.Context) (*domain.AdminToken, bool) {
	admin, exists := c.Get(AdminContextKey)
	if !exists {
		return nil, false
	}

	a, ok := admin.(*domain.AdminToken)
	return a, ok
}
