package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the GORM repositories that share one database handle.
// Inside Transaction every repository is bound to the same *gorm.DB
// transaction, so work spanning several of them commits or rolls back together.
type Store struct {
	db           *gorm.DB
	Users        UserRepository
	ResetTokens  PasswordResetRepository
	Products     ProductRepository
	Carts        CartRepository
	Orders       OrderRepository
	CustomOrders CustomOrderRepository
	Reservations ReservationRepository
}

// NewStore creates a Store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Users:        NewGORMUserRepository(db),
		ResetTokens:  NewGORMPasswordResetRepository(db),
		Products:     NewGORMProductRepository(db),
		Carts:        NewGORMCartRepository(db),
		Orders:       NewGORMOrderRepository(db),
		CustomOrders: NewGORMCustomOrderRepository(db),
		Reservations: NewGORMReservationRepository(db),
	}
}

// DB returns the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
