package repositories

import (
	"context"
	"errors"
	"fmt"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"gorm.io/gorm"
)

// CustomOrderRepository defines the interface for custom-order data access.
type CustomOrderRepository interface {
	Create(ctx context.Context, order *models.CustomOrder) error
	GetByID(ctx context.Context, id string) (*models.CustomOrder, error)
	// List returns requests newest first; an empty userID lists everyone's.
	List(ctx context.Context, userID string) ([]models.CustomOrder, error)
	UpdateStatus(ctx context.Context, id string, status models.CustomOrderStatus) error
}

// GORMCustomOrderRepository is a GORM implementation of CustomOrderRepository.
type GORMCustomOrderRepository struct {
	db *gorm.DB
}

// NewGORMCustomOrderRepository creates a new instance of GORMCustomOrderRepository.
func NewGORMCustomOrderRepository(db *gorm.DB) *GORMCustomOrderRepository {
	return &GORMCustomOrderRepository{db: db}
}

func (r *GORMCustomOrderRepository) Create(ctx context.Context, order *models.CustomOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create custom order: %w", err)
	}
	return nil
}

func (r *GORMCustomOrderRepository) GetByID(ctx context.Context, id string) (*models.CustomOrder, error) {
	var order models.CustomOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("custom order", id)
		}
		return nil, fmt.Errorf("failed to get custom order %s: %w", id, err)
	}
	return &order, nil
}

func (r *GORMCustomOrderRepository) List(ctx context.Context, userID string) ([]models.CustomOrder, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var orders []models.CustomOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list custom orders: %w", err)
	}
	return orders, nil
}

func (r *GORMCustomOrderRepository) UpdateStatus(ctx context.Context, id string, status models.CustomOrderStatus) error {
	res := r.db.WithContext(ctx).Model(&models.CustomOrder{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update custom order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("custom order", id)
	}
	return nil
}
