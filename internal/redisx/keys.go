package redisx

import "time"

const (
	// Inventory mirror entry: inventory:item:{inventory_item_id} -> JSON InventoryMirrorEntry
	KeyInventoryItem = "inventory:item:%d"

	// Pub/sub channel carrying mirror changes to SSE subscribers
	ChannelInventoryUpdates = "inventory:updates"

	// Strategy cache fast path: strategy:{scope} -> text
	KeyStrategyCache = "strategy:%s"
)

var (
	// Mirror entries are a cache of Shopify state, not a source of truth
	TTLInventoryMirror = 7 * 24 * time.Hour
	TTLStrategyCache   = 10 * time.Minute
)
