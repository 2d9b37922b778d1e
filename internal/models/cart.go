package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart belongs to exactly one user and is created on first add-to-cart.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;type:varchar(36);not null"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Total is the sum of price x quantity over the cart's items.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// CartItem is unique per (cart, product). Price is snapshotted when the item
// is added and re-synced on every repeat add.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string    `json:"cartId" gorm:"uniqueIndex:idx_cart_product;type:varchar(36);not null"`
	ProductID string    `json:"productId" gorm:"uniqueIndex:idx_cart_product;type:varchar(36);not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     int64     `json:"price" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
