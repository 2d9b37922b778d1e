package repositories

import (
	"context"
	"errors"
	"fmt"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart for user", userID)
		}
		return nil, fmt.Errorf("failed to get cart of user %s: %w", userID, err)
	}
	return &cart, nil
}

func (r *GORMCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create cart of user %s: %w", userID, err)
	}
	return &cart, nil
}

func (r *GORMCartRepository) UpsertItem(ctx context.Context, cartID, productID string, qty int, price int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	switch {
	case err == nil:
		item.Quantity += qty
		item.Price = price
		if err := r.db.WithContext(ctx).Model(&item).Updates(map[string]interface{}{
			"quantity": item.Quantity,
			"price":    item.Price,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty, Price: price}
		if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
		return &item, nil
	default:
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}
}

func (r *GORMCartRepository) GetItem(ctx context.Context, cartID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item", itemID)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", itemID, err)
	}
	return &item, nil
}

func (r *GORMCartRepository) UpdateItemQuantity(ctx context.Context, itemID string, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", qty)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item", itemID)
	}
	return nil
}

func (r *GORMCartRepository) DeleteItem(ctx context.Context, cartID, itemID string) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ? AND cart_id = ?", itemID, cartID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item", itemID)
	}
	return nil
}

func (r *GORMCartRepository) ClearItems(ctx context.Context, cartID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "cart_id = ?", cartID)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear cart %s: %w", cartID, res.Error)
	}
	return res.RowsAffected, nil
}
