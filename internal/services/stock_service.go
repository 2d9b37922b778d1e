package services

import (
	"context"
	"errors"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"

	"go.uber.org/zap"
)

// StockService moves product stock for whole orders.
type StockService struct {
	store *repositories.Store
}

// NewStockService creates a new StockService.
func NewStockService(store *repositories.Store) *StockService {
	return &StockService{store: store}
}

// AdjustStock deducts or restores the stock of every item of an order in one
// transaction and flips the order's stockAdjusted flag. Deducting an already
// adjusted order, or restoring one that is not, returns it unchanged.
func (s *StockService) AdjustStock(ctx context.Context, orderID string, action models.StockAction) (*models.Order, error) {
	if action != models.StockDeduct && action != models.StockRestore {
		return nil, apperrors.Validation("invalid stock action: %q", action)
	}
	var order *models.Order
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		order, err = adjustStock(ctx, tx, orderID, action)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// adjustStock does the work of AdjustStock inside a caller-owned transaction.
func adjustStock(ctx context.Context, tx *repositories.Store, orderID string, action models.StockAction) (*models.Order, error) {
	order, err := tx.Orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	deduct := action == models.StockDeduct
	if order.StockAdjusted == deduct {
		return order, nil
	}

	// Items referencing the same product are moved together.
	quantities := make(map[string]int)
	names := make(map[string]string)
	var productIDs []string
	for _, it := range order.Items {
		if _, seen := quantities[it.ProductID]; !seen {
			productIDs = append(productIDs, it.ProductID)
			names[it.ProductID] = it.Name
		}
		quantities[it.ProductID] += it.Quantity
	}

	if deduct {
		for _, id := range productIDs {
			product, err := tx.Products.GetByID(ctx, id)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, &apperrors.InsufficientStockError{ProductID: id, ProductName: names[id], Requested: quantities[id]}
			}
			if err != nil {
				return nil, err
			}
			if product.Stock < quantities[id] {
				return nil, &apperrors.InsufficientStockError{
					ProductID:   id,
					ProductName: product.Name,
					Requested:   quantities[id],
					Available:   product.Stock,
				}
			}
		}
	}

	// Claim the flag before touching stock. Under concurrent requests the
	// losing transaction sees zero affected rows here and does nothing.
	claimed, err := tx.Orders.SetStockAdjusted(ctx, orderID, !deduct, deduct)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return tx.Orders.GetByID(ctx, orderID)
	}

	for _, id := range productIDs {
		qty := quantities[id]
		if deduct {
			ok, err := tx.Products.DecrementStock(ctx, id, qty)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &apperrors.InsufficientStockError{ProductID: id, ProductName: names[id], Requested: qty}
			}
			continue
		}
		ok, err := tx.Products.IncrementStock(ctx, id, qty)
		if err != nil {
			return nil, err
		}
		if !ok {
			zap.S().Warnf("order %s: product %s no longer exists, %d units not restored", order.OrderCode, id, qty)
		}
	}

	order.StockAdjusted = deduct
	zap.S().Infof("order %s: stock %s for %d products", order.OrderCode, action, len(productIDs))
	return order, nil
}
