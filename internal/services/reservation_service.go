package services

import (
	"context"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
)

// ReservationService books showroom visits.
type ReservationService struct {
	repo   repositories.ReservationRepository
	events EventPublisher
	now    func() time.Time
}

// NewReservationService creates a new ReservationService.
func NewReservationService(repo repositories.ReservationRepository, events EventPublisher) *ReservationService {
	return &ReservationService{repo: repo, events: events, now: time.Now}
}

// Book stores a PENDING reservation. Visits must be in the future.
func (s *ReservationService) Book(ctx context.Context, r *models.Reservation) error {
	if !r.VisitDate.After(s.now()) {
		return apperrors.Validation("visit date must be in the future")
	}
	r.Status = models.ReservationPending
	if err := s.repo.Create(ctx, r); err != nil {
		return err
	}
	publishEvent(ctx, s.events, EventReservationCreated, map[string]interface{}{
		"reservationId": r.ID,
		"name":          r.Name,
		"visitDate":     r.VisitDate,
	})
	return nil
}

// List returns reservations of one user, or all when userID is empty.
func (s *ReservationService) List(ctx context.Context, userID string) ([]models.Reservation, error) {
	return s.repo.List(ctx, userID)
}

// SetStatus moves a reservation to another status.
func (s *ReservationService) SetStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	st, ok := models.ParseReservationStatus(status)
	if !ok {
		return nil, apperrors.Validation("invalid reservation status: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
