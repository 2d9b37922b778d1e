package handlers

import (
	"bytes"
	"fmt"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/reports"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves downloadable sales reports.
type ReportHandler struct {
	insights *services.InsightService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(insights *services.InsightService) *ReportHandler {
	return &ReportHandler{insights: insights}
}

// RegisterRoutes mounts GET /sales.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sales", h.HandleSalesReport)
}

// HandleSalesReport renders the sales report as an attachment. It accepts
// the insight query parameters plus format=csv|xlsx|pdf.
func (h *ReportHandler) HandleSalesReport(c *fiber.Ctx) error {
	format, err := reports.ParseFormat(c.Query("format"))
	if err != nil {
		return respondError(c, apperrors.Validation("%s", err.Error()))
	}
	q, err := parseInsightQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	orders, resolved, err := h.insights.Sales(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}

	summary := services.Aggregate(orders, resolved.Top)
	report := reports.BuildSalesReport(orders, summary, resolved.Start, resolved.End)

	var buf bytes.Buffer
	if err := reports.Write(&buf, format, report); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename(format)))
	return c.Send(buf.Bytes())
}
