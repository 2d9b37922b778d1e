package handlers

import (
	"kayoemoeda/internal/middleware"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomOrderHandler handles bespoke furniture requests.
type CustomOrderHandler struct {
	service *services.CustomOrderService
}

// NewCustomOrderHandler creates a new CustomOrderHandler.
func NewCustomOrderHandler(service *services.CustomOrderService) *CustomOrderHandler {
	return &CustomOrderHandler{service: service}
}

// RegisterRoutes registers the customer routes.
func (h *CustomOrderHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/custom-orders")
	routes.Post("/", h.HandleSubmit)
	routes.Get("/", h.HandleListMine)
}

// RegisterAdminRoutes registers the management routes.
func (h *CustomOrderHandler) RegisterAdminRoutes(router fiber.Router) {
	routes := router.Group("/custom-orders")
	routes.Get("/", h.HandleListAll)
	routes.Patch("/:id", h.HandleSetStatus)
}

// CustomOrderRequest is the body of POST /custom-orders.
type CustomOrderRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	FurnitureType string `json:"furnitureType" validate:"required,max=100"`
	Description   string `json:"description" validate:"required,max=5000"`
	Dimensions    string `json:"dimensions" validate:"omitempty,max=100"`
	Material      string `json:"material" validate:"omitempty,max=100"`
	Budget        int64  `json:"budget" validate:"gte=0"`
}

// HandleSubmit stores a new custom order request.
func (h *CustomOrderHandler) HandleSubmit(c *fiber.Ctx) error {
	var req CustomOrderRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	order := models.CustomOrder{
		UserID:        middleware.CurrentUser(c).ID,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		FurnitureType: req.FurnitureType,
		Description:   req.Description,
		Dimensions:    req.Dimensions,
		Material:      req.Material,
		Budget:        req.Budget,
	}
	if err := h.service.Submit(c.UserContext(), &order); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListMine lists the current user's requests.
func (h *CustomOrderHandler) HandleListMine(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleListAll lists every request.
func (h *CustomOrderHandler) HandleListAll(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), "")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleSetStatus updates the status of a request.
func (h *CustomOrderHandler) HandleSetStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	order, err := h.service.SetStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
