package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
)

// heartbeat keeps intermediaries from closing an idle SSE connection.
const sseHeartbeat = 25 * time.Second

// HandleInventoryStream handles GET /v1/inventory/stream. One Redis pub/sub
// subscription per connected client; events are relayed as-is. Auth arrives
// via the access_token query parameter because EventSource cannot set headers.
func HandleInventoryStream(mirror *redisx.MirrorStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		sub := mirror.Subscribe(c.Request.Context())
		defer sub.Close()
		events := sub.Channel()

		ticker := time.NewTicker(sseHeartbeat)
		defer ticker.Stop()

		c.Writer.WriteHeader(http.StatusOK)
		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case msg, ok := <-events:
				if !ok {
					return false
				}
				c.SSEvent("inventory", msg.Payload)
				return true
			case <-ticker.C:
				c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
				return true
			}
		})
	}
}

type testEventRequest struct {
	InventoryItemID int64 `json:"inventory_item_id" binding:"required"`
	Quantity        int   `json:"quantity"`
}

// HandleInventoryStreamTest handles POST /v1/inventory/stream/test. Publishes
// a synthetic event so an operator can confirm the relay end to end without
// touching real stock.
func HandleInventoryStreamTest(mirror *redisx.MirrorStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		entry := domain.InventoryMirrorEntry{
			InventoryItemID: req.InventoryItemID,
			Quantity:        req.Quantity,
			Status:          domain.SyncStatusConfirmed,
			UpdatedAt:       time.Now().UTC(),
		}
		if err := mirror.PublishTest(c.Request.Context(), entry); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
