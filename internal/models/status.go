package models

import "strings"

// PaymentStatus is the payment state stored on an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentExpired   PaymentStatus = "EXPIRED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// ShippingStatus is the fulfilment state stored on an order.
type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "PENDING"
	ShippingPacked    ShippingStatus = "PACKED"
	ShippingShipped   ShippingStatus = "SHIPPED"
	ShippingDelivered ShippingStatus = "DELIVERED"
)

// CoarseStatus is the simplified status administrators pick from. It is never
// stored; it maps onto PaymentStatus and ShippingStatus through statusTransitions.
type CoarseStatus string

const (
	CoarsePending    CoarseStatus = "PENDING"
	CoarseProcessing CoarseStatus = "PROCESSING"
	CoarseDone       CoarseStatus = "DONE"
	CoarseCancelled  CoarseStatus = "CANCELLED"
)

// StockAction is the stock side effect of a status change.
type StockAction string

const (
	StockNone    StockAction = ""
	StockDeduct  StockAction = "deduct"
	StockRestore StockAction = "restore"
)

// StatusTransition describes what a coarse status does to the stored fields.
// A nil Payment leaves the payment status unchanged.
type StatusTransition struct {
	Shipping ShippingStatus
	Payment  *PaymentStatus
	Stock    StockAction
}

func paymentPtr(p PaymentStatus) *PaymentStatus { return &p }

var statusTransitions = map[CoarseStatus]StatusTransition{
	CoarsePending:    {Shipping: ShippingPending, Stock: StockNone},
	CoarseProcessing: {Shipping: ShippingPacked, Stock: StockDeduct},
	CoarseDone:       {Shipping: ShippingDelivered, Stock: StockDeduct},
	CoarseCancelled:  {Shipping: ShippingPending, Payment: paymentPtr(PaymentCancelled), Stock: StockRestore},
}

// ParseCoarseStatus accepts a coarse status name, case-insensitively.
func ParseCoarseStatus(s string) (CoarseStatus, bool) {
	c := CoarseStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := statusTransitions[c]
	return c, ok
}

// Transition returns the field mapping for c.
func (c CoarseStatus) Transition() (StatusTransition, bool) {
	t, ok := statusTransitions[c]
	return t, ok
}

// CanMoveTo reports whether an order currently in c may be set to next.
// Re-applying the current status is always allowed. CANCELLED is final;
// DONE may still be cancelled.
func (c CoarseStatus) CanMoveTo(next CoarseStatus) bool {
	if c == next {
		return true
	}
	switch c {
	case CoarseCancelled:
		return false
	case CoarseDone:
		return next == CoarseCancelled
	}
	return true
}

// DeriveCoarseStatus folds the stored fields back into a coarse status.
func DeriveCoarseStatus(p PaymentStatus, s ShippingStatus) CoarseStatus {
	if p == PaymentCancelled {
		return CoarseCancelled
	}
	switch s {
	case ShippingDelivered:
		return CoarseDone
	case ShippingPacked, ShippingShipped:
		return CoarseProcessing
	}
	return CoarsePending
}

// IsSale reports whether an order with these fields counts as revenue.
func IsSale(p PaymentStatus, s ShippingStatus) bool {
	if p == PaymentCancelled {
		return false
	}
	for _, st := range SaleShippingStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// SaleShippingStatuses are the shipping states of orders counted as sales.
var SaleShippingStatuses = []ShippingStatus{ShippingPacked, ShippingShipped, ShippingDelivered}
