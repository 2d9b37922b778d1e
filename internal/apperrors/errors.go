// Package apperrors holds the error taxonomy shared by repositories, services
// and handlers. Handlers map these to HTTP statuses; anything else is treated
// as an upstream failure.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnauthenticated is returned when no valid session is presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the session lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict is returned on unique-key clashes such as a taken email.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports bad or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an entity id that does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InsufficientStockError is returned when a deduction would take a product
// below zero, or the product no longer exists.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var s *InsufficientStockError
	return errors.As(err, &s)
}
