package shopping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem(uuid.New(), uuid.New(), 500, "")
	require.NoError(t, err)
	assert.Equal(t, "g", item.Unit)
	assert.False(t, item.Purchased)

	_, err = NewItem(uuid.New(), uuid.New(), 0, "g")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestMerge(t *testing.T) {
	item, err := NewItem(uuid.New(), uuid.New(), 200, "g")
	require.NoError(t, err)

	require.NoError(t, item.Merge(300))
	assert.InDelta(t, 500, item.Quantity, 0.001)

	assert.ErrorIs(t, item.Merge(-1), ErrInvalidQuantity)
	assert.InDelta(t, 500, item.Quantity, 0.001)
}

func TestMarkPurchased(t *testing.T) {
	item, err := NewItem(uuid.New(), uuid.New(), 200, "g")
	require.NoError(t, err)

	item.MarkPurchased(true)
	assert.True(t, item.Purchased)
	item.MarkPurchased(false)
	assert.False(t, item.Purchased)
}
