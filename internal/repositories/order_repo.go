package repositories

import (
	"context"
	"time"

	"kayoemoeda/internal/models"
)

// OrderFilter narrows order listings. Zero values mean no restriction.
type OrderFilter struct {
	UserID string
	Status models.CoarseStatus
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *models.Order) error
	// GetByID loads the order with items and owner.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetByIDForUpdate is GetByID after taking a row lock on the order that
	// holds until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatusFields(ctx context.Context, id string, shipping models.ShippingStatus, payment models.PaymentStatus) error
	// SetStockAdjusted flips the flag from -> to. It reports false when the
	// flag did not hold from, meaning another writer got there first.
	SetStockAdjusted(ctx context.Context, id string, from, to bool) (bool, error)
	// ListSales returns orders counted as revenue created in [from, to),
	// oldest first, with their items. Nil bounds are open.
	ListSales(ctx context.Context, from, to *time.Time) ([]models.Order, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
}
