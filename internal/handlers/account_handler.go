package handlers

import (
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler lets the owner manage administrator accounts.
type AccountHandler struct {
	service *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers the admin-account routes.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/admins")
	routes.Get("/", h.HandleListAdmins)
	routes.Post("/", h.HandleCreateAdmin)
	routes.Patch("/:id", h.HandleUpdateAdmin)
}

// HandleListAdmins lists every ADMIN account.
func (h *AccountHandler) HandleListAdmins(c *fiber.Ctx) error {
	admins, err := h.service.ListAdmins(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(admins)
}

// HandleCreateAdmin creates an ADMIN account.
func (h *AccountHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	admin := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
	if err := h.service.CreateAdmin(c.UserContext(), &admin); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

// HandleUpdateAdmin renames or (de)activates an ADMIN account.
func (h *AccountHandler) HandleUpdateAdmin(c *fiber.Ctx) error {
	var req services.AdminUpdate
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	admin, err := h.service.UpdateAdmin(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(admin)
}
