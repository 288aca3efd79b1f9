package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/service"
)

// DashboardHandler serves dashboard counters.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	stats, err := h.dashboard.Stats(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, dto.NewDashboardResponse(stats.Org, stats.Self))
}
