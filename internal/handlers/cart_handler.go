package handlers

import (
	"kayoemoeda/internal/middleware"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the current user's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes. The router must be authenticated.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// AddCartItemRequest is the body of POST /cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest is the body of PATCH /cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func cartResponse(c *fiber.Ctx, status int, cart *models.Cart) error {
	return c.Status(status).JSON(fiber.Map{
		"cart":  cart,
		"total": cart.Total(),
	})
}

// HandleGetCart returns the cart with its running total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return cartResponse(c, fiber.StatusOK, cart)
}

// HandleAddItem adds a product to the cart, or raises its quantity.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddCartItemRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	cart, err := h.service.AddItem(c.UserContext(), middleware.CurrentUser(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return cartResponse(c, fiber.StatusCreated, cart)
}

// HandleUpdateItem sets the quantity of a cart line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	cart, err := h.service.UpdateItem(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return cartResponse(c, fiber.StatusOK, cart)
}

// HandleRemoveItem deletes a cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return cartResponse(c, fiber.StatusOK, cart)
}
