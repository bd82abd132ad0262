package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/genai"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
)

// Uploads are candle photos; anything above this is a mistake.
const maxImageBytes = 8 << 20

// HandleGenerateDetails handles POST /v1/studio/generate-details.
// Multipart form: one or more "images" files plus an optional "notes" field.
// Responds with the stored draft, including its redemption token.
func HandleGenerateDetails(gen *genai.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form", "details": err.Error()})
			return
		}

		var images []genai.ImageInput
		for _, fh := range form.File["images"] {
			if fh.Size > maxImageBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image too large", "filename": fh.Filename})
				return
			}
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "filename": fh.Filename})
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "filename": fh.Filename})
				return
			}
			mimeType := fh.Header.Get("Content-Type")
			if mimeType == "" {
				mimeType = http.DetectContentType(data)
			}
			images = append(images, genai.ImageInput{MIMEType: mimeType, Data: data})
		}

		notes := c.PostForm("notes")

		svc := service.NewStudioService(gen, repos, logger)
		draft, err := svc.GenerateDetails(c.Request.Context(), notes, images)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": draft})
	}
}

// HandleGetDraft handles GET /v1/studio/drafts/:token
func HandleGetDraft(gen *genai.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := uuid.Parse(c.Param("token"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft token"})
			return
		}

		svc := service.NewStudioService(gen, repos, logger)
		draft, err := svc.GetDraft(c.Request.Context(), token)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": draft})
	}
}

type rewriteRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Tone        string `json:"tone"`
}

// HandleRewriteDescription handles POST /v1/studio/rewrite-description
func HandleRewriteDescription(gen *genai.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rewriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		svc := service.NewStudioService(gen, repos, logger)
		rev, err := svc.RewriteDescription(c.Request.Context(), req.ProductID, req.Description, req.Tone, adminEmail(c))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"revision": rev})
	}
}

// HandleListRevisions handles GET /v1/studio/revisions/:productID
func HandleListRevisions(gen *genai.Client, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		svc := service.NewStudioService(gen, repos, logger)
		revisions, err := svc.ListRevisions(c.Request.Context(), c.Param("productID"), limit)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"revisions": revisions})
	}
}
