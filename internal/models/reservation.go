package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus tracks a showroom visit.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationDone      ReservationStatus = "DONE"
)

// ParseReservationStatus accepts a reservation status name, case-insensitively.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	st := ReservationStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationDone:
		return st, true
	}
	return "", false
}

// Reservation is a booked showroom or consultation visit.
type Reservation struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string            `json:"userId" gorm:"index;type:varchar(36)"`
	Name      string            `json:"name" gorm:"type:varchar(100);not null"`
	Phone     string            `json:"phone" gorm:"type:varchar(30);not null"`
	VisitDate time.Time         `json:"visitDate" gorm:"index;not null"`
	Notes     string            `json:"notes"`
	Status    ReservationStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReservationPending
	}
	return nil
}
