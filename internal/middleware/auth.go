package middleware

import (
	"errors"
	"strings"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userKey = "user"

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// resolved user is stored in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				zap.S().Debugf("JWT validation failed: %v", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid or expired token",
				})
			}
			zap.S().Errorf("authentication lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}

		c.Locals(userKey, user)
		c.Locals("user_id", user.ID)
		c.Locals("role", string(user.Role))
		return c.Next()
	}
}

// RequireCapability rejects users for which can returns false. It must run
// after AuthRequired.
func RequireCapability(can models.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if !can(user) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to access this resource",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
