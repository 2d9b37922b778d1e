package repositories

import (
	"context"

	"kayoemoeda/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementStock lowers stock by qty only if enough is left. It reports
	// false when the product is missing or the stock is too low.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, id string, qty int) (bool, error)
}
