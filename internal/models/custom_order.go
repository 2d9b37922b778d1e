package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomOrderStatus tracks a free-form furniture request.
type CustomOrderStatus string

const (
	CustomOrderNew        CustomOrderStatus = "NEW"
	CustomOrderContacted  CustomOrderStatus = "CONTACTED"
	CustomOrderInProgress CustomOrderStatus = "IN_PROGRESS"
	CustomOrderDone       CustomOrderStatus = "DONE"
	CustomOrderCancelled  CustomOrderStatus = "CANCELLED"
)

// ParseCustomOrderStatus accepts a custom-order status name, case-insensitively.
func ParseCustomOrderStatus(s string) (CustomOrderStatus, bool) {
	st := CustomOrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case CustomOrderNew, CustomOrderContacted, CustomOrderInProgress, CustomOrderDone, CustomOrderCancelled:
		return st, true
	}
	return "", false
}

// CustomOrder is a request for furniture that is not in the catalog.
type CustomOrder struct {
	ID            string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string            `json:"userId" gorm:"index;type:varchar(36)"`
	Name          string            `json:"name" gorm:"type:varchar(100);not null"`
	Phone         string            `json:"phone" gorm:"type:varchar(30);not null"`
	Email         string            `json:"email" gorm:"type:varchar(255)"`
	FurnitureType string            `json:"furnitureType" gorm:"type:varchar(100);not null"`
	Description   string            `json:"description" gorm:"not null"`
	Dimensions    string            `json:"dimensions" gorm:"type:varchar(100)"`
	Material      string            `json:"material" gorm:"type:varchar(100)"`
	Budget        int64             `json:"budget"`
	Status        CustomOrderStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (o *CustomOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = CustomOrderNew
	}
	return nil
}
