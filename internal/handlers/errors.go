package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"kayoemoeda/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so error keys match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// parseBody decodes and validates the request body into dst. When it
// returns false the error response has already been written.
func parseBody(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		zap.S().Debugf("invalid request body on %s: %v", c.Path(), err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, respondError(c, err)
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// respondError maps a service error to its HTTP status. Anything outside the
// known taxonomy is logged and reported as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *apperrors.ValidationError
		stockErr      *apperrors.InsufficientStockError
	)
	switch {
	case errors.As(err, &validationErr):
		return message(c, fiber.StatusBadRequest, validationErr.Message)
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":   stockErr.Error(),
			"productId": stockErr.ProductID,
		})
	case errors.Is(err, apperrors.ErrEmptyCart):
		return message(c, fiber.StatusBadRequest, "Cart is empty")
	case errors.Is(err, apperrors.ErrNotFound):
		return message(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return message(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return message(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		return message(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, apperrors.ErrConflict):
		return message(c, fiber.StatusConflict, err.Error())
	}

	zap.S().Errorw("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"requestId", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err,
	)
	return message(c, fiber.StatusInternalServerError, "Internal server error")
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
