package repositories

import (
	"context"
	"errors"
	"fmt"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"gorm.io/gorm"
)

// ReservationRepository defines the interface for reservation data access.
type ReservationRepository interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// List returns reservations by visit date; an empty userID lists everyone's.
	List(ctx context.Context, userID string) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
}

// GORMReservationRepository is a GORM implementation of ReservationRepository.
type GORMReservationRepository struct {
	db *gorm.DB
}

// NewGORMReservationRepository creates a new instance of GORMReservationRepository.
func NewGORMReservationRepository(db *gorm.DB) *GORMReservationRepository {
	return &GORMReservationRepository{db: db}
}

func (r *GORMReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *GORMReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation", id)
		}
		return nil, fmt.Errorf("failed to get reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *GORMReservationRepository) List(ctx context.Context, userID string) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).Order("visit_date ASC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

func (r *GORMReservationRepository) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Reservation{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update reservation %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("reservation", id)
	}
	return nil
}
