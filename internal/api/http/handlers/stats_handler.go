package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-suite/records-portal/internal/service"
)

// StatsHandler serves dashboard counters.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Requests GET /stats/requests.
func (h *StatsHandler) Requests(c *fiber.Ctx) error {
	stats, err := h.service.RequestStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
