package handlers

import (
	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/middleware"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the customer order routes. The router must be
// authenticated.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/from-cart", h.HandleCreateFromCart)
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetMyOrder)
}

// RegisterAdminRoutes registers order management routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id", h.HandleUpdateOrderStatus)
	orderRoutes.Post("/:id/confirm-payment", h.HandleConfirmPayment)
}

// HandleCreateFromCart checks out the current user's cart.
func (h *OrderHandler) HandleCreateFromCart(c *fiber.Ctx) error {
	var info services.ShippingInfo
	if ok, err := parseBody(c, &info); !ok {
		return err
	}
	order, err := h.service.CreateOrderFromCart(c.UserContext(), middleware.CurrentUser(c).ID, info)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
}

// HandleGetMyOrders lists the current user's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	filter, err := orderFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	filter.UserID = middleware.CurrentUser(c).ID
	orders, err := h.service.ListOrders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ordersResponse(orders))
}

// HandleGetMyOrder returns one of the current user's orders.
func (h *OrderHandler) HandleGetMyOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrderForUser(c.UserContext(), c.Params("id"), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleGetOrders lists all orders, optionally filtered by ?status=.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	filter, err := orderFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	filter.UserID = c.Query("userId")
	orders, err := h.service.ListOrders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ordersResponse(orders))
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// UpdateStatusRequest is the body of PATCH /admin/orders/:id.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order to a coarse status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	order, err := h.service.SetOrderStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// HandleConfirmPayment marks an order paid and deducts its stock.
func (h *OrderHandler) HandleConfirmPayment(c *fiber.Ctx) error {
	order, err := h.service.ConfirmPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Payment confirmed",
		"order":   orderResponse(order),
	})
}

func orderFilter(c *fiber.Ctx) (repositories.OrderFilter, error) {
	var filter repositories.OrderFilter
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseCoarseStatus(raw)
		if !ok {
			return filter, apperrors.Validation("invalid order status: %s", raw)
		}
		filter.Status = status
	}
	return filter, nil
}

// OrderResponse adds the derived coarse status to an order.
type OrderResponse struct {
	*models.Order
	Status models.CoarseStatus `json:"status"`
}

func orderResponse(o *models.Order) OrderResponse {
	return OrderResponse{Order: o, Status: o.Status()}
}

func ordersResponse(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = orderResponse(&orders[i])
	}
	return out
}
