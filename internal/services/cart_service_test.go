package services_test

import (
	"context"
	"testing"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItem(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	user := s.customer(t, "budi@example.com")
	chair := s.product(t, "Kursi Jati", 50000, 5)

	empty, err := s.carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, int64(0), empty.Total())

	cart, err := s.carts.AddItem(ctx, user.ID, chair.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(100000), cart.Total())

	// A repeat add accumulates and re-syncs the price.
	chair.Price = 55000
	require.NoError(t, s.store.Products.Update(ctx, chair))
	cart, err = s.carts.AddItem(ctx, user.ID, chair.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, int64(55000), cart.Items[0].Price)
	assert.Equal(t, int64(165000), cart.Total())
}

func TestCartService_AddItem_Rejections(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	user := s.customer(t, "budi@example.com")
	chair := s.product(t, "Kursi Jati", 50000, 2)
	hidden := &models.Product{Name: "Lemari", Price: 10000, Stock: 5, Status: models.ProductInactive}
	require.NoError(t, s.store.Products.Create(ctx, hidden))

	_, err := s.carts.AddItem(ctx, user.ID, chair.ID, 0)
	assert.True(t, apperrors.IsValidation(err))

	_, err = s.carts.AddItem(ctx, user.ID, "missing", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = s.carts.AddItem(ctx, user.ID, hidden.ID, 1)
	assert.True(t, apperrors.IsValidation(err))

	_, err = s.carts.AddItem(ctx, user.ID, chair.ID, 2)
	require.NoError(t, err)
	_, err = s.carts.AddItem(ctx, user.ID, chair.ID, 1)
	assert.True(t, apperrors.IsInsufficientStock(err), "cart quantity counts against stock")
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	user := s.customer(t, "budi@example.com")
	other := s.customer(t, "sari@example.com")
	chair := s.product(t, "Kursi Jati", 50000, 5)

	cart, err := s.carts.AddItem(ctx, user.ID, chair.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = s.carts.UpdateItem(ctx, user.ID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = s.carts.UpdateItem(ctx, user.ID, itemID, 6)
	assert.True(t, apperrors.IsInsufficientStock(err))

	// Lines of another user's cart are invisible.
	_, err = s.carts.AddItem(ctx, other.ID, chair.ID, 1)
	require.NoError(t, err)
	_, err = s.carts.RemoveItem(ctx, other.ID, itemID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	cart, err = s.carts.RemoveItem(ctx, user.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
