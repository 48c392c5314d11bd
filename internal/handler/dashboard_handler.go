package handler

import (
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.service.GetOverview()
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, overview)
}

func (h *DashboardHandler) GetTrend(c *fiber.Ctx) error {
	trend, err := h.service.GetSevenDayTrend()
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, trend)
}

// GetReportSummary supports ?range=7d|1m|3m|6m|12m (default 7d).
func (h *DashboardHandler) GetReportSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetReportSummary(c.Query("range", "7d"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, summary)
}
