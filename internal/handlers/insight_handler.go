package handlers

import (
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InsightHandler serves revenue summaries.
type InsightHandler struct {
	service *services.InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(service *services.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

// RegisterAdminRoutes mounts GET /insight/sales.
func (h *InsightHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/insight/sales", h.HandleRevenueInsights)
}

// RegisterOwnerRoutes mounts GET /insights.
func (h *InsightHandler) RegisterOwnerRoutes(router fiber.Router) {
	router.Get("/insights", h.HandleRevenueInsights)
}

// HandleRevenueInsights returns monthly revenue and top products.
func (h *InsightHandler) HandleRevenueInsights(c *fiber.Ctx) error {
	q, err := parseInsightQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	insights, err := h.service.ComputeRevenueInsights(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(insights)
}
