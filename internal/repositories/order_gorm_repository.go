package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("User").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByIDForUpdate locks the order row with SELECT ... FOR UPDATE before
// loading it. SQLite has no row locks; there the driver drops the clause and
// the database-wide write lock serializes writers instead.
func (r *GORMOrderRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Order, error) {
	var locked models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&locked, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("failed to lock order %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *GORMOrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Preload("User").Order("created_at DESC")
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	switch filter.Status {
	case models.CoarseCancelled:
		q = q.Where("payment_status = ?", models.PaymentCancelled)
	case models.CoarseDone:
		q = q.Where("payment_status <> ? AND shipping_status = ?", models.PaymentCancelled, models.ShippingDelivered)
	case models.CoarseProcessing:
		q = q.Where("payment_status <> ? AND shipping_status IN ?", models.PaymentCancelled,
			[]models.ShippingStatus{models.ShippingPacked, models.ShippingShipped})
	case models.CoarsePending:
		q = q.Where("payment_status <> ? AND shipping_status = ?", models.PaymentCancelled, models.ShippingPending)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) UpdateStatusFields(ctx context.Context, id string, shipping models.ShippingStatus, payment models.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"shipping_status": shipping,
			"payment_status":  payment,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order", id)
	}
	return nil
}

func (r *GORMOrderRepository) SetStockAdjusted(ctx context.Context, id string, from, to bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND stock_adjusted = ?", id, from).
		Update("stock_adjusted", to)
	if res.Error != nil {
		return false, fmt.Errorf("failed to flag stock adjustment on order %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *GORMOrderRepository) ListSales(ctx context.Context, from, to *time.Time) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Preload("User").
		Where("shipping_status IN ?", models.SaleShippingStatuses).
		Where("payment_status <> ?", models.PaymentCancelled).
		Order("created_at ASC")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
