package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

// InventoryEvent is a normalized inventory-change event. Shopify has shipped
// several payload shapes over the years; everything is normalized to this
// before touching the mirror.
type InventoryEvent struct {
	InventoryItemID int64
	Quantity        int
}

// The three historic payload shapes, decoded explicitly rather than probed
// dynamically:
//
//	{"inventory_item_id": 123, "available": 5}
//	{"inventory_item_id": "gid://shopify/InventoryItem/123", "available": 5}
//	{"inventoryItem": {"id": ...}, "available": 5}
type inventoryPayloadNumeric struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	Available       *int  `json:"available"`
}

type inventoryPayloadGID struct {
	InventoryItemID string `json:"inventory_item_id"`
	Available       *int   `json:"available"`
}

type inventoryPayloadNested struct {
	InventoryItem struct {
		ID json.RawMessage `json:"id"`
	} `json:"inventoryItem"`
	Available *int `json:"available"`
}

// NormalizeInventoryEvent resolves any recognized payload shape to the same
// normalized event. Unrecognized payloads return ErrValidation; the webhook
// treats those as a 200 no-op.
func NormalizeInventoryEvent(raw []byte) (*InventoryEvent, error) {
	var numeric inventoryPayloadNumeric
	if err := json.Unmarshal(raw, &numeric); err == nil && numeric.InventoryItemID > 0 {
		return &InventoryEvent{InventoryItemID: numeric.InventoryItemID, Quantity: intOrZero(numeric.Available)}, nil
	}

	var gid inventoryPayloadGID
	if err := json.Unmarshal(raw, &gid); err == nil && gid.InventoryItemID != "" {
		id, err := shopify.ExtractIDFromGID(gid.InventoryItemID)
		if err != nil {
			return nil, &errors.ErrValidation{Message: fmt.Sprintf("unrecognized inventory item id: %s", gid.InventoryItemID)}
		}
		return &InventoryEvent{InventoryItemID: id, Quantity: intOrZero(gid.Available)}, nil
	}

	var nested inventoryPayloadNested
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested.InventoryItem.ID) > 0 {
		var asNumber int64
		if err := json.Unmarshal(nested.InventoryItem.ID, &asNumber); err == nil && asNumber > 0 {
			return &InventoryEvent{InventoryItemID: asNumber, Quantity: intOrZero(nested.Available)}, nil
		}
		var asString string
		if err := json.Unmarshal(nested.InventoryItem.ID, &asString); err == nil && asString != "" {
			id, err := shopify.ExtractIDFromGID(asString)
			if err != nil {
				return nil, &errors.ErrValidation{Message: fmt.Sprintf("unrecognized inventory item id: %s", asString)}
			}
			return &InventoryEvent{InventoryItemID: id, Quantity: intOrZero(nested.Available)}, nil
		}
	}

	return nil, &errors.ErrValidation{Message: "payload has no recognizable inventory item id"}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

type inventoryService struct {
	client *shopify.Client
	mirror *redisx.MirrorStore
	cfg    config.ShopifyConfig
	logger *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(client *shopify.Client, mirror *redisx.MirrorStore, cfg config.ShopifyConfig, logger *zap.Logger) *inventoryService {
	return &inventoryService{
		client: client,
		mirror: mirror,
		cfg:    cfg,
		logger: logger,
	}
}

// IngestWebhookEvent writes a webhook-delivered quantity into the mirror.
// The write carries the version after the one read here, so a manual edit
// landing in between advances the mirror past us and the webhook is dropped
// as stale instead of clobbering the fresher quantity.
func (s *inventoryService) IngestWebhookEvent(ctx context.Context, ev InventoryEvent) (*domain.InventoryMirrorEntry, error) {
	current, err := s.mirror.Get(ctx, ev.InventoryItemID)
	if err != nil {
		return nil, err
	}
	version := int64(1)
	if current != nil {
		version = current.Version + 1
	}

	entry, err := s.mirror.Set(ctx, domain.InventoryMirrorEntry{
		InventoryItemID: ev.InventoryItemID,
		Quantity:        ev.Quantity,
		Status:          domain.SyncStatusConfirmed,
		Version:         version,
		UpdatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if entry.Version != version {
		s.logger.Info("Dropped stale inventory webhook",
			zap.Int64("inventory_item_id", ev.InventoryItemID),
			zap.Int64("webhook_version", version),
			zap.Int64("mirror_version", entry.Version),
		)
	}
	return entry, nil
}

// QuickUpdate applies a manual quantity delta: mark the mirror syncing, push
// the adjustment to Shopify, then confirm (or record the error). The mirror
// stays a cache either way; Shopify remains authoritative.
func (s *inventoryService) QuickUpdate(ctx context.Context, inventoryItemID int64, delta int) (*domain.InventoryMirrorEntry, error) {
	if s.cfg.LocationID == "" {
		return nil, &errors.ErrValidation{Message: "SHOPIFY_LOCATION_ID is not configured"}
	}

	current, err := s.mirror.Get(ctx, inventoryItemID)
	if err != nil {
		return nil, err
	}
	quantity := delta
	if current != nil {
		quantity = current.Quantity + delta
	}

	if _, err := s.mirror.Set(ctx, domain.InventoryMirrorEntry{
		InventoryItemID: inventoryItemID,
		Quantity:        quantity,
		Status:          domain.SyncStatusSyncing,
	}); err != nil {
		return nil, err
	}

	input := shopify.InventoryAdjustQuantitiesInput{
		Reason: "correction",
		Name:   "available",
		Changes: []shopify.InventoryChangeInput{
			{
				InventoryItemID: fmt.Sprintf("gid://shopify/InventoryItem/%d", inventoryItemID),
				LocationID:      s.cfg.LocationID,
				Delta:           delta,
			},
		},
	}

	resp, adjustErr := s.client.Execute(ctx, shopify.InventoryAdjustQuantitiesMutation, map[string]interface{}{"input": input})
	if adjustErr == nil {
		var result struct {
			InventoryAdjustQuantities struct {
				UserErrors []shopify.UserError `json:"userErrors"`
			} `json:"inventoryAdjustQuantities"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			adjustErr = fmt.Errorf("failed to parse adjust response: %w", err)
		} else if len(result.InventoryAdjustQuantities.UserErrors) > 0 {
			adjustErr = fmt.Errorf("shopify user errors: %v", result.InventoryAdjustQuantities.UserErrors)
		}
	}

	status := domain.SyncStatusConfirmed
	if adjustErr != nil {
		status = domain.SyncStatusError
		s.logger.Warn("Inventory quick update failed at provider",
			zap.Int64("inventory_item_id", inventoryItemID),
			zap.Int("delta", delta),
			zap.Error(adjustErr),
		)
	}

	entry, setErr := s.mirror.Set(ctx, domain.InventoryMirrorEntry{
		InventoryItemID: inventoryItemID,
		Quantity:        quantity,
		Status:          status,
	})
	if setErr != nil {
		return nil, setErr
	}
	if adjustErr != nil {
		return entry, adjustErr
	}
	return entry, nil
}
