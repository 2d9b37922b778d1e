package repositories

import (
	"context"

	"kayoemoeda/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// PasswordResetRepository stores forgot-password tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	// MarkUsed consumes the token. It reports false if it was already used.
	MarkUsed(ctx context.Context, id string) (bool, error)
}
