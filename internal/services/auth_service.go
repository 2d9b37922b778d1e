package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	store      *repositories.Store // reset tokens and the password change commit together
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	resetDurat time.Duration // Duration for which a reset token is valid
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithTokenTTL overrides the 24h session lifetime.
func WithTokenTTL(d time.Duration) AuthOption {
	return func(s *AuthService) {
		if d > 0 {
			s.tokenDurat = d
		}
	}
}

// WithPasswordReset enables the forgot-password flow on top of store.
func WithPasswordReset(store *repositories.Store, events EventPublisher, ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		s.store = store
		s.events = events
		if ttl > 0 {
			s.resetDurat = ttl
		}
	}
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		resetDurat: time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterUser registers a new customer. user.Password carries the plain
// password on the way in and the bcrypt hash on the way out.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	user.Role = models.RoleCustomer
	user.IsActive = true
	return s.createAccount(ctx, user)
}

func (s *AuthService) createAccount(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	// Check if email already exists
	if existingUser, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, apperrors.ErrConflict)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Do not reveal whether the email exists
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("account is disabled: %w", apperrors.ErrUnauthenticated)
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return tokenString, user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		zap.S().Debugf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Authenticate resolves a token to its user. Disabled accounts are rejected
// even while their token has not expired.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrUnauthenticated)
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("token has no subject: %w", apperrors.ErrUnauthenticated)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", apperrors.ErrUnauthenticated)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", apperrors.ErrUnauthenticated)
	}
	return user, nil
}

// ForgotPassword issues a reset token for an active account and publishes it
// for the mailer. It returns nil, nil for unknown or disabled accounts so
// callers cannot discover which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*models.PasswordResetToken, error) {
	if s.store == nil {
		return nil, errors.New("password reset is not configured")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     strings.ReplaceAll(uuid.New().String(), "-", ""),
		ExpiresAt: time.Now().Add(s.resetDurat),
	}
	if err := s.store.ResetTokens.Create(ctx, token); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.events, EventPasswordResetRequested, map[string]interface{}{
		"userId":    user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"token":     token.Token,
		"expiresAt": token.ExpiresAt,
	})
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password. The token is
// only burned if the password change commits with it.
func (s *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	if s.store == nil {
		return errors.New("password reset is not configured")
	}
	if len(newPassword) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		token, err := tx.ResetTokens.GetByToken(ctx, tokenString)
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validation("reset token is invalid or expired")
		}
		if err != nil {
			return err
		}
		if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
			return apperrors.Validation("reset token is invalid or expired")
		}

		consumed, err := tx.ResetTokens.MarkUsed(ctx, token.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return apperrors.Validation("reset token is invalid or expired")
		}
		return tx.Users.UpdatePassword(ctx, token.UserID, hash)
	})
}

// EnsureOwner creates the owner account if no user holds that email yet.
func (s *AuthService) EnsureOwner(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}
	owner := &models.User{Name: name, Email: email, Password: password, Role: models.RoleOwner, IsActive: true}
	if err := s.createAccount(ctx, owner); err != nil {
		return nil, false, err
	}
	return owner, true, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
