package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"

	"go.uber.org/zap"
)

// ShippingInfo is the delivery data captured at checkout.
type ShippingInfo struct {
	RecipientName string `json:"recipientName" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=30"`
	Address       string `json:"address" validate:"required,max=500"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postalCode" validate:"omitempty,max=10"`
	Notes         string `json:"notes" validate:"omitempty,max=500"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	store  *repositories.Store
	codes  OrderCodeGenerator
	events EventPublisher
	now    func() time.Time
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(store *repositories.Store, codes OrderCodeGenerator, events EventPublisher) *OrderService {
	return &OrderService{
		store:  store,
		codes:  codes,
		events: events,
		now:    time.Now,
	}
}

// CreateOrderFromCart snapshots the user's cart into a new order and empties
// the cart, all in one transaction. Stock is not touched here.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID string, info ShippingInfo) (*models.Order, error) {
	var order *models.Order
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		cart, err := tx.Carts.GetByUserID(ctx, userID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return apperrors.ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			if ci.Product == nil {
				return apperrors.Validation("a product in your cart is no longer available, please remove it")
			}
			items = append(items, models.OrderItem{
				ProductID: ci.ProductID,
				Name:      ci.Product.Name,
				Price:     ci.Price,
				Quantity:  ci.Quantity,
				Image:     ci.Product.Image,
			})
		}

		order = &models.Order{
			OrderCode:      s.codes.NextCode(),
			UserID:         userID,
			RecipientName:  info.RecipientName,
			Phone:          info.Phone,
			Address:        info.Address,
			City:           info.City,
			PostalCode:     info.PostalCode,
			Notes:          info.Notes,
			GrossAmount:    cart.Total(),
			PaymentStatus:  models.PaymentPending,
			ShippingStatus: models.ShippingPending,
			Items:          items,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		// A concurrent checkout of the same cart deletes the lines first;
		// this one then sees fewer rows and must not produce a second order.
		cleared, err := tx.Carts.ClearItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if cleared < int64(len(cart.Items)) {
			return fmt.Errorf("cart changed during checkout, please retry: %w", apperrors.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("order %s created for user %s, gross amount %d", order.OrderCode, userID, order.GrossAmount)
	publishEvent(ctx, s.events, EventOrderCreated, map[string]interface{}{
		"orderId":     order.ID,
		"orderCode":   order.OrderCode,
		"userId":      order.UserID,
		"grossAmount": order.GrossAmount,
		"items":       len(order.Items),
	})
	return order, nil
}

// GetOrderByID retrieves a single order with items and owner.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.store.Orders.GetByID(ctx, id)
}

// GetOrderForUser retrieves an order only if it belongs to userID.
func (s *OrderService) GetOrderForUser(ctx context.Context, id, userID string) (*models.Order, error) {
	order, err := s.store.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", id)
	}
	return order, nil
}

// ListOrders lists orders newest first.
func (s *OrderService) ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, error) {
	return s.store.Orders.List(ctx, filter)
}

// SetOrderStatus applies an administrator-chosen coarse status. The field
// update and the stock side effect share one transaction, so an
// insufficient-stock failure leaves the order untouched.
func (s *OrderService) SetOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	next, ok := models.ParseCoarseStatus(status)
	if !ok {
		return nil, apperrors.Validation("invalid order status: %s", status)
	}
	transition, _ := next.Transition()

	var (
		updated *models.Order
		from    models.CoarseStatus
	)
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		order, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from = order.Status()
		if !from.CanMoveTo(next) {
			return apperrors.Validation("cannot change order status from %s to %s", from, next)
		}

		payment := order.PaymentStatus
		if transition.Payment != nil {
			payment = *transition.Payment
		}
		if err := tx.Orders.UpdateStatusFields(ctx, id, transition.Shipping, payment); err != nil {
			return err
		}
		if transition.Stock != models.StockNone {
			if _, err := adjustStock(ctx, tx, id, transition.Stock); err != nil {
				return err
			}
		}
		updated, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("order %s status %s -> %s", updated.OrderCode, from, next)
	s.publishStatusChanged(ctx, updated)
	return updated, nil
}

// ConfirmPayment marks an order PAID, records the payment and deducts stock.
// Cancelled orders cannot be paid.
func (s *OrderService) ConfirmPayment(ctx context.Context, id string) (*models.Order, error) {
	var updated *models.Order
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		order, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order.PaymentStatus == models.PaymentCancelled {
			return apperrors.Validation("order %s is cancelled and cannot be paid", order.OrderCode)
		}

		if order.PaymentStatus != models.PaymentPaid {
			if err := tx.Orders.UpdateStatusFields(ctx, id, order.ShippingStatus, models.PaymentPaid); err != nil {
				return err
			}
			paidAt := s.now()
			if err := tx.Orders.CreatePayment(ctx, &models.Payment{
				OrderID: id,
				Amount:  order.GrossAmount,
				Method:  "MANUAL_CONFIRMATION",
				Status:  models.PaymentPaid,
				PaidAt:  &paidAt,
			}); err != nil {
				return err
			}
		}
		if _, err := adjustStock(ctx, tx, id, models.StockDeduct); err != nil {
			return err
		}
		updated, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("order %s payment confirmed", updated.OrderCode)
	s.publishStatusChanged(ctx, updated)
	return updated, nil
}

func (s *OrderService) publishStatusChanged(ctx context.Context, order *models.Order) {
	publishEvent(ctx, s.events, EventOrderStatusChanged, map[string]interface{}{
		"orderId":        order.ID,
		"orderCode":      order.OrderCode,
		"userId":         order.UserID,
		"status":         order.Status(),
		"paymentStatus":  order.PaymentStatus,
		"shippingStatus": order.ShippingStatus,
		"stockAdjusted":  order.StockAdjusted,
	})
}
