package services

import (
	"context"
	"strings"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"

	"go.uber.org/zap"
)

// AdminUpdate carries the owner-editable fields of an admin account.
// Nil fields are left unchanged.
type AdminUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	IsActive *bool   `json:"isActive"`
}

// AccountService lets the owner manage administrator accounts.
type AccountService struct {
	auth  *AuthService
	users repositories.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(auth *AuthService, users repositories.UserRepository) *AccountService {
	return &AccountService{auth: auth, users: users}
}

// ListAdmins returns every ADMIN account.
func (s *AccountService) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleAdmin)
}

// CreateAdmin creates an active ADMIN account with the given plain password.
func (s *AccountService) CreateAdmin(ctx context.Context, user *models.User) error {
	user.Role = models.RoleAdmin
	user.IsActive = true
	if err := s.auth.createAccount(ctx, user); err != nil {
		return err
	}
	zap.S().Infof("admin account %s created", user.Email)
	return nil
}

// UpdateAdmin edits an ADMIN account. Deactivating it blocks further logins
// and invalidates open sessions on their next request.
func (s *AccountService) UpdateAdmin(ctx context.Context, id string, upd AdminUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, apperrors.NotFound("admin", id)
	}
	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		user.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	zap.S().Infof("admin account %s updated (active=%t)", user.Email, user.IsActive)
	return user, nil
}
