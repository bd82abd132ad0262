package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

// stubTokenRepo recognizes exactly one token value.
type stubTokenRepo struct {
	token string
	admin *domain.AdminToken
}

func (s *stubTokenRepo) GetByToken(ctx context.Context, token string) (*domain.AdminToken, error) {
	if token == s.token {
		return s.admin, nil
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid token"}
}

func (s *stubTokenRepo) Create(ctx context.Context, t *domain.AdminToken) error { return nil }
func (s *stubTokenRepo) Deactivate(ctx context.Context, id uuid.UUID) error     { return nil }

func authFixture(allowedEmail string) (*gin.Engine, *stubTokenRepo) {
	gin.SetMode(gin.TestMode)

	repo := &stubTokenRepo{
		token: "good-token",
		admin: &domain.AdminToken{ID: uuid.New(), Email: "chick@example.com", IsActive: true},
	}
	cfg := &config.Config{}
	if allowedEmail != "" {
		cfg.AuthorizedEmails = []string{allowedEmail}
	}

	router := gin.New()
	router.Use(AuthMiddleware(cfg, &repository.Repositories{AdminToken: repo}, zap.NewNop()))
	router.GET("/whoami", func(c *gin.Context) {
		admin, ok := GetAdminFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no admin in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": admin.Email})
	})
	return router, repo
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := authFixture("chick@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := authFixture("chick@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router, _ := authFixture("chick@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenNotAllowListed(t *testing.T) {
	// The token itself is fine; the email has been removed from the list
	router, _ := authFixture("someone-else@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_Success(t *testing.T) {
	router, _ := authFixture("chick@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chick@example.com")
}

func TestAuthMiddleware_AllowListIsCaseInsensitive(t *testing.T) {
	router, _ := authFixture("CHICK@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_QueryParamFallback(t *testing.T) {
	// EventSource clients can only pass the token in the URL
	router, _ := authFixture("chick@example.com")

	req := httptest.NewRequest(http.MethodGet, "/whoami?access_token=good-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
