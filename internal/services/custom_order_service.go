package services

import (
	"context"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
)

// CustomOrderService handles free-form furniture requests.
type CustomOrderService struct {
	repo   repositories.CustomOrderRepository
	events EventPublisher
}

// NewCustomOrderService creates a new CustomOrderService.
func NewCustomOrderService(repo repositories.CustomOrderRepository, events EventPublisher) *CustomOrderService {
	return &CustomOrderService{repo: repo, events: events}
}

// Submit stores a new request in status NEW.
func (s *CustomOrderService) Submit(ctx context.Context, order *models.CustomOrder) error {
	order.Status = models.CustomOrderNew
	if order.Budget < 0 {
		return apperrors.Validation("budget cannot be negative")
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}
	publishEvent(ctx, s.events, EventCustomOrderCreated, map[string]interface{}{
		"customOrderId": order.ID,
		"name":          order.Name,
		"phone":         order.Phone,
		"furnitureType": order.FurnitureType,
	})
	return nil
}

// List returns requests of one user, or all when userID is empty.
func (s *CustomOrderService) List(ctx context.Context, userID string) ([]models.CustomOrder, error) {
	return s.repo.List(ctx, userID)
}

// SetStatus moves a request to another status.
func (s *CustomOrderService) SetStatus(ctx context.Context, id, status string) (*models.CustomOrder, error) {
	st, ok := models.ParseCustomOrderStatus(status)
	if !ok {
		return nil, apperrors.Validation("invalid custom order status: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
