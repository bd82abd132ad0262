package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vessel is a physical candle holder SKU. A vessel is uniquely keyed by
// (Name, SizeOz); money is kept in integer cents.
type Vessel struct {
	ID            uuid.UUID
	Name          string
	SizeOz        int
	BaseCostCents int
	MarginPct     float64
	Supplier      *string
	Status        VesselStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Wax is a wax type priced per ounce.
type Wax struct {
	ID              uuid.UUID
	Name            string
	PricePerOzCents int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Wick is a wick type with a fixed per-candle cost.
type Wick struct {
	ID        uuid.UUID
	Name      string
	CostCents int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminToken maps a bearer token (stored as bcrypt hash + SHA-256 lookup
// column) to an admin email. The email must still pass the configured
// allow-list.
type AdminToken struct {
	ID          uuid.UUID
	Email       string
	TokenHash   string
	TokenLookup string // SHA256(token) hex for fast lookup
	Label       *string
	IsActive    bool
	CreatedAt   time.Time
}

// InventoryMirrorEntry is the cached view of a Shopify inventory item.
// Shopify is authoritative; this exists only for low-latency UI display.
type InventoryMirrorEntry struct {
	InventoryItemID int64      `json:"inventory_item_id"`
	Quantity        int        `json:"quantity"`
	Status          SyncStatus `json:"status"`
	Version         int64      `json:"version"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProductDraft is an AI-drafted product listing stashed under a random token
// until the operator retrieves it. Expired drafts are purged by a background
// loop.
type ProductDraft struct {
	Token       uuid.UUID
	Title       string
	Description string
	Tags        []string
	PriceCents  *int
	Reasoning   string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// StrategyCache holds the last AI-generated business strategy text, keyed
// globally ("global") or per admin email.
type StrategyCache struct {
	Scope     string
	Content   string
	UpdatedBy string
	UpdatedAt time.Time
}

// DescriptionRevision is one entry in the description rewrite history.
type DescriptionRevision struct {
	ID          uuid.UUID
	ProductID   string
	Original    string
	Rewritten   string
	Reasoning   string
	RequestedBy string
	CreatedAt   time.Time
}

// UserSetting is a per-admin preference row.
type UserSetting struct {
	Email     string
	Key       string
	Value     string
	UpdatedAt time.Time
}
