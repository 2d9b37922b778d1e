package handlers

import (
	"time"

	"kayoemoeda/internal/middleware"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService    *services.AuthService
	loginRateLimit int
}

// NewAuthHandler creates a new AuthHandler. loginRateLimit is the number of
// login attempts allowed per client IP and minute; 0 disables the limit.
func NewAuthHandler(authService *services.AuthService, loginRateLimit int) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		loginRateLimit: loginRateLimit,
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	if h.loginRateLimit > 0 {
		authRoutes.Post("/login", limiter.New(limiter.Config{
			Max:        h.loginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return message(c, fiber.StatusTooManyRequests, "Too many login attempts, try again later")
			},
		}), h.HandleLogin)
	} else {
		authRoutes.Post("/login", h.HandleLogin)
	}
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// RegisterSessionRoutes registers routes that need an authenticated user.
func (h *AuthHandler) RegisterSessionRoutes(router fiber.Router) {
	router.Get("/me", h.HandleMe)
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// HandleRegister handles new customer registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
	if err := h.authService.RegisterUser(c.UserContext(), &user); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		zap.S().Infof("failed login for %s: %v", req.Email, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleForgotPassword issues a reset token. The response is the same whether
// or not the email belongs to an account.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if _, err := h.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "If the email is registered, a reset link has been sent",
	})
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// HandleResetPassword sets a new password using a reset token.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if err := h.authService.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password has been reset"})
}

// HandleMe returns the current session's user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
