package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus controls catalog visibility.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Product represents a piece of furniture in the catalog.
// Price is in whole rupiah.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string         `json:"name" gorm:"type:varchar(150);not null" validate:"required,min=3,max=150"`
	Description string         `json:"description" validate:"omitempty,max=2000"`
	Price       int64          `json:"price" gorm:"not null" validate:"required,gt=0"`
	Stock       int            `json:"stock" gorm:"not null" validate:"gte=0"`
	Image       string         `json:"image" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Status      ProductStatus  `json:"status" gorm:"type:varchar(20);index;not null" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = ProductActive
	}
	return nil
}
