package services

import (
	"context"
	"errors"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
)

// CartService manages the per-user shopping cart.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the user's cart. A user who never added anything gets an
// empty cart that is not persisted.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, err
}

// AddItem adds qty units of a product, creating the cart on first use. A
// repeat add accumulates the quantity and re-syncs the price.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != models.ProductActive {
		return nil, apperrors.Validation("product %s is not available", product.Name)
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	inCart := 0
	if existing, err := s.findLine(ctx, userID, productID); err == nil && existing != nil {
		inCart = existing.Quantity
	}
	if product.Stock < inCart+qty {
		return nil, &apperrors.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   inCart + qty,
			Available:   product.Stock,
		}
	}

	if _, err := s.carts.UpsertItem(ctx, cart.ID, product.ID, qty, product.Price); err != nil {
		return nil, err
	}
	return s.carts.GetByUserID(ctx, userID)
}

// UpdateItem sets the quantity of a cart line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.carts.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Product != nil && item.Product.Stock < qty {
		return nil, &apperrors.InsufficientStockError{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Requested:   qty,
			Available:   item.Product.Stock,
		}
	}
	if err := s.carts.UpdateItemQuantity(ctx, item.ID, qty); err != nil {
		return nil, err
	}
	return s.carts.GetByUserID(ctx, userID)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.carts.GetByUserID(ctx, userID)
}

func (s *CartService) findLine(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i], nil
		}
	}
	return nil, nil
}
