package handlers

import (
	"strings"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/middleware"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/araddon/dateparse"
	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles showroom visit bookings.
type ReservationHandler struct {
	service *services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers the customer routes.
func (h *ReservationHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/reservations")
	routes.Post("/", h.HandleBook)
	routes.Get("/", h.HandleListMine)
}

// RegisterAdminRoutes registers the management routes.
func (h *ReservationHandler) RegisterAdminRoutes(router fiber.Router) {
	routes := router.Group("/reservations")
	routes.Get("/", h.HandleListAll)
	routes.Patch("/:id", h.HandleSetStatus)
}

// ReservationRequest is the body of POST /reservations. VisitDate accepts
// any common date-time layout and is read in server-local time.
type ReservationRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=30"`
	VisitDate string `json:"visitDate" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
}

// HandleBook books a visit.
func (h *ReservationHandler) HandleBook(c *fiber.Ctx) error {
	var req ReservationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	visit, err := dateparse.ParseLocal(strings.TrimSpace(req.VisitDate))
	if err != nil {
		return respondError(c, apperrors.Validation("invalid visitDate: %s", req.VisitDate))
	}
	reservation := models.Reservation{
		UserID:    middleware.CurrentUser(c).ID,
		Name:      req.Name,
		Phone:     req.Phone,
		VisitDate: visit,
		Notes:     req.Notes,
	}
	if err := h.service.Book(c.UserContext(), &reservation); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// HandleListMine lists the current user's reservations.
func (h *ReservationHandler) HandleListMine(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// HandleListAll lists every reservation.
func (h *ReservationHandler) HandleListAll(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext(), "")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// HandleSetStatus updates a reservation's status.
func (h *ReservationHandler) HandleSetStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	reservation, err := h.service.SetStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservation)
}
