package services

import (
	"context"
	"testing"

	"stylesyncapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameStorePerSession(t *testing.T) {
	registry, err := NewWardrobeRegistry()
	require.NoError(t, err)
	ctx := context.Background()

	first, err := registry.GetStore(ctx, "session-a")
	require.NoError(t, err)
	first.Add(models.ClothingItem{Category: "T-Shirt"})

	again, err := registry.GetStore(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())

	other, err := registry.GetStore(ctx, "session-b")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Len())
}

func TestRegistryResetInstallsFreshStore(t *testing.T) {
	registry, err := NewWardrobeRegistry()
	require.NoError(t, err)
	ctx := context.Background()

	store, err := registry.GetStore(ctx, "session-a")
	require.NoError(t, err)
	store.Add(models.ClothingItem{Category: "T-Shirt"})

	fresh, err := registry.ResetStore(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Len())

	// a reset store hands out ids starting from 1 again
	id := fresh.Add(models.ClothingItem{Category: "Dress"})
	assert.Equal(t, uint(1), id)

	resolved, err := registry.GetStore(ctx, "session-a")
	require.NoError(t, err)
	assert.Same(t, fresh, resolved)
}
