package handlers

import (
	"github.com/gofiber/fiber/v2"

	"imobcrm/internal/services"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
