package redisx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
)

func TestAdvance_ZeroVersionTakesNextSlot(t *testing.T) {
	stored := domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 5, Version: 3}

	next, ok := advance(stored, domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 7})

	assert.True(t, ok)
	assert.Equal(t, int64(4), next.Version)
	assert.Equal(t, 7, next.Quantity)
}

func TestAdvance_FirstWriteStartsAtOne(t *testing.T) {
	next, ok := advance(domain.InventoryMirrorEntry{}, domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 2})

	assert.True(t, ok)
	assert.Equal(t, int64(1), next.Version)
}

func TestAdvance_StaleVersionKeepsStored(t *testing.T) {
	stored := domain.InventoryMirrorEntry{
		InventoryItemID: 1,
		Quantity:        9,
		Status:          domain.SyncStatusConfirmed,
		Version:         5,
	}

	// Equal version: a webhook that read the mirror before a manual edit
	// bumped it must not win
	next, ok := advance(stored, domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 2, Version: 5})
	assert.False(t, ok)
	assert.Equal(t, stored, next)

	next, ok = advance(stored, domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 2, Version: 4})
	assert.False(t, ok)
	assert.Equal(t, stored, next)
}

func TestAdvance_FresherExplicitVersionWins(t *testing.T) {
	stored := domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 9, Version: 5}

	next, ok := advance(stored, domain.InventoryMirrorEntry{InventoryItemID: 1, Quantity: 2, Version: 6})

	assert.True(t, ok)
	assert.Equal(t, int64(6), next.Version)
	assert.Equal(t, 2, next.Quantity)
}

func TestAdvance_FillsUpdatedAt(t *testing.T) {
	next, ok := advance(domain.InventoryMirrorEntry{}, domain.InventoryMirrorEntry{InventoryItemID: 1})
	assert.True(t, ok)
	assert.False(t, next.UpdatedAt.IsZero())

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	next, ok = advance(domain.InventoryMirrorEntry{}, domain.InventoryMirrorEntry{InventoryItemID: 1, UpdatedAt: at})
	assert.True(t, ok)
	assert.Equal(t, at, next.UpdatedAt)
}
