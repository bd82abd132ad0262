package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
)

// MirrorStore is the Redis-backed inventory mirror. Two independent writers
// touch it (the Shopify webhook and the manual quick-update path), so every
// write goes through a WATCH transaction that rejects stale versions instead
// of last-writer-wins.
type MirrorStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewMirrorStore creates a new mirror store
func NewMirrorStore(rdb *redis.Client, logger *zap.Logger) *MirrorStore {
	return &MirrorStore{rdb: rdb, logger: logger}
}

// Get returns the mirror entry for an inventory item, or nil when the item
// has never been mirrored.
func (s *MirrorStore) Get(ctx context.Context, inventoryItemID int64) (*domain.InventoryMirrorEntry, error) {
	key := fmt.Sprintf(KeyInventoryItem, inventoryItemID)
	raw, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mirror get: %w", err)
	}
	var entry domain.InventoryMirrorEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("mirror entry corrupt: %w", err)
	}
	return &entry, nil
}

// advance applies the version guard. A zero incoming version takes the next
// slot; an explicit version at or below the stored one is stale and the
// stored entry is kept.
func advance(stored, next domain.InventoryMirrorEntry) (domain.InventoryMirrorEntry, bool) {
	if next.Version == 0 {
		next.Version = stored.Version + 1
	} else if next.Version <= stored.Version {
		return stored, false
	}
	if next.UpdatedAt.IsZero() {
		next.UpdatedAt = time.Now().UTC()
	}
	return next, true
}

// Set writes a mirror entry and publishes the change to SSE subscribers.
// The write is guarded by the stored entry's version: an incoming write with
// a version at or below the stored one is dropped and the stored entry is
// returned (stale webhook arriving after a fresher manual edit). When version
// is zero the store assigns stored.Version+1.
func (s *MirrorStore) Set(ctx context.Context, entry domain.InventoryMirrorEntry) (*domain.InventoryMirrorEntry, error) {
	key := fmt.Sprintf(KeyInventoryItem, entry.InventoryItemID)

	var written *domain.InventoryMirrorEntry
	txn := func(tx *redis.Tx) error {
		stored := domain.InventoryMirrorEntry{}
		raw, err := tx.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
				s.logger.Warn("Discarding corrupt mirror entry", zap.Int64("inventory_item_id", entry.InventoryItemID), zap.Error(jsonErr))
				stored = domain.InventoryMirrorEntry{}
			}
		}

		next, ok := advance(stored, entry)
		if !ok {
			// Stale write; keep what we have
			written = &next
			return nil
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, TTLInventoryMirror)
			pipe.Publish(ctx, ChannelInventoryUpdates, payload)
			return nil
		})
		if err != nil {
			return err
		}
		written = &next
		return nil
	}

	// Retry a few times on WATCH conflicts with the other writer
	for i := 0; i < 3; i++ {
		err := s.rdb.Watch(ctx, txn, key)
		if err == nil {
			return written, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return nil, fmt.Errorf("mirror set: %w", err)
	}
	return nil, fmt.Errorf("mirror set: too many concurrent writes for item %d", entry.InventoryItemID)
}

// Subscribe opens one pub/sub subscription on the inventory channel. Each
// connected browser tab holds its own subscription; there is no coordination
// between tabs beyond the shared backing store.
func (s *MirrorStore) Subscribe(ctx context.Context) *redis.PubSub {
	return s.rdb.Subscribe(ctx, ChannelInventoryUpdates)
}

// PublishTest pushes a synthetic event to subscribers without touching the
// mirror (manual trigger for wiring checks).
func (s *MirrorStore) PublishTest(ctx context.Context, entry domain.InventoryMirrorEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, ChannelInventoryUpdates, payload).Err()
}
