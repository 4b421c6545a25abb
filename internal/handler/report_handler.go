package handler

import (
	"go-stock-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// StockMovement serves the windowed report.
// Query params: reportType (daily|monthly|custom), startDate, endDate.
func (h *ReportHandler) StockMovement(c *fiber.Ctx) error {
	report, err := h.service.StockMovement(
		c.Query("reportType", service.ReportDaily),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(report)
}

// CurrentStock serves per-product quantity with lifetime in/out totals.
func (h *ReportHandler) CurrentStock(c *fiber.Ctx) error {
	rows, err := h.service.CurrentStock()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(rows)
}
