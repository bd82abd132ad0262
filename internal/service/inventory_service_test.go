package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

func TestNormalizeInventoryEvent_NumericID(t *testing.T) {
	ev, err := NormalizeInventoryEvent([]byte(`{"inventory_item_id": 123456, "available": 5}`))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), ev.InventoryItemID)
	assert.Equal(t, 5, ev.Quantity)
}

func TestNormalizeInventoryEvent_GIDString(t *testing.T) {
	ev, err := NormalizeInventoryEvent([]byte(`{"inventory_item_id": "gid://shopify/InventoryItem/123456", "available": 12}`))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), ev.InventoryItemID)
	assert.Equal(t, 12, ev.Quantity)
}

func TestNormalizeInventoryEvent_NestedNumeric(t *testing.T) {
	ev, err := NormalizeInventoryEvent([]byte(`{"inventoryItem": {"id": 789}, "available": 3}`))
	require.NoError(t, err)
	assert.Equal(t, int64(789), ev.InventoryItemID)
	assert.Equal(t, 3, ev.Quantity)
}

func TestNormalizeInventoryEvent_NestedGID(t *testing.T) {
	ev, err := NormalizeInventoryEvent([]byte(`{"inventoryItem": {"id": "gid://shopify/InventoryItem/789"}, "available": 3}`))
	require.NoError(t, err)
	assert.Equal(t, int64(789), ev.InventoryItemID)
}

func TestNormalizeInventoryEvent_MissingAvailable(t *testing.T) {
	ev, err := NormalizeInventoryEvent([]byte(`{"inventory_item_id": 42}`))
	require.NoError(t, err)
	assert.Equal(t, 0, ev.Quantity)
}

func TestNormalizeInventoryEvent_Unrecognized(t *testing.T) {
	cases := []string{
		`{}`,
		`{"foo": "bar"}`,
		`{"inventory_item_id": "not-a-gid"}`,
		`{"inventoryItem": {"id": "garbage"}}`,
		`not json at all`,
	}
	for _, raw := range cases {
		_, err := NormalizeInventoryEvent([]byte(raw))
		require.Error(t, err, "payload: %s", raw)
		var vErr *errors.ErrValidation
		assert.ErrorAs(t, err, &vErr, "payload: %s", raw)
	}
}

func TestNormalizeInventoryEvent_NumericWinsOverNested(t *testing.T) {
	// When both shapes are present the flat field is authoritative
	ev, err := NormalizeInventoryEvent([]byte(`{"inventory_item_id": 1, "inventoryItem": {"id": 2}, "available": 7}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ev.InventoryItemID)
}
