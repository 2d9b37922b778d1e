package repositories

import (
	"context"

	"kayoemoeda/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserID loads the user's cart with items and their products.
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	// UpsertItem adds qty to an existing line and re-syncs its price, or
	// creates the line.
	UpsertItem(ctx context.Context, cartID, productID string, qty int, price int64) (*models.CartItem, error)
	GetItem(ctx context.Context, cartID, itemID string) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, qty int) error
	DeleteItem(ctx context.Context, cartID, itemID string) error
	ClearItems(ctx context.Context, cartID string) (int64, error)
}
