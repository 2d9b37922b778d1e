package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// ListByRole returns every user holding role, oldest first.
func (r *GORMUserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users with role %s: %w", role, err)
	}
	return users, nil
}

// Update saves name, phone and the active flag.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":      user.Name,
			"phone":     user.Phone,
			"is_active": user.IsActive,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user", user.ID)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *GORMUserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user", id)
	}
	return nil
}

// GORMPasswordResetRepository is a GORM implementation of PasswordResetRepository.
type GORMPasswordResetRepository struct {
	db *gorm.DB
}

// NewGORMPasswordResetRepository creates a new instance of GORMPasswordResetRepository.
func NewGORMPasswordResetRepository(db *gorm.DB) *GORMPasswordResetRepository {
	return &GORMPasswordResetRepository{db: db}
}

func (r *GORMPasswordResetRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

func (r *GORMPasswordResetRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reset token", token)
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return &t, nil
}

func (r *GORMPasswordResetRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.PasswordResetToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", time.Now())
	if res.Error != nil {
		return false, fmt.Errorf("failed to consume reset token: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
