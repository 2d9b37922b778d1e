package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is a snapshot of a cart line taken when the order was placed.
// ProductID may point at a product that has since been deleted.
type OrderItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"orderId" gorm:"index;type:varchar(36);not null"`
	ProductID string    `json:"productId" gorm:"index;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(150);not null"`
	Price     int64     `json:"price" gorm:"not null"` // Price at the time of order
	Quantity  int       `json:"quantity" gorm:"not null"`
	Image     string    `json:"image" gorm:"type:varchar(500)"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Subtotal is price x quantity.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Order represents a customer order placed from a cart.
type Order struct {
	ID             string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderCode      string         `json:"orderCode" gorm:"uniqueIndex;type:varchar(40);not null"`
	UserID         string         `json:"userId" gorm:"index;type:varchar(36);not null"`
	User           *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RecipientName  string         `json:"recipientName" gorm:"type:varchar(100)"`
	Phone          string         `json:"phone" gorm:"type:varchar(30)"`
	Address        string         `json:"address"`
	City           string         `json:"city" gorm:"type:varchar(100)"`
	PostalCode     string         `json:"postalCode" gorm:"type:varchar(10)"`
	Notes          string         `json:"notes"`
	GrossAmount    int64          `json:"grossAmount" gorm:"not null"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus" gorm:"type:varchar(20);index;not null"`
	ShippingStatus ShippingStatus `json:"shippingStatus" gorm:"type:varchar(20);index;not null"`
	StockAdjusted  bool           `json:"stockAdjusted" gorm:"not null"`
	Items          []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if o.ShippingStatus == "" {
		o.ShippingStatus = ShippingPending
	}
	return nil
}

// Status is the coarse status derived from the stored fields.
func (o *Order) Status() CoarseStatus {
	return DeriveCoarseStatus(o.PaymentStatus, o.ShippingStatus)
}

// Payment records a confirmed payment against an order.
type Payment struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string        `json:"orderId" gorm:"index;type:varchar(36);not null"`
	Amount    int64         `json:"amount" gorm:"not null"`
	Method    string        `json:"method" gorm:"type:varchar(30)"`
	Status    PaymentStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaidAt    *time.Time    `json:"paidAt,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
