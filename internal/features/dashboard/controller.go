package dashboard

import (
	"amigo-admin/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	service StatsService
}

func NewDashboardController(service StatsService) *DashboardController {
	return &DashboardController{service: service}
}

// GetStats godoc
// @Summary      Dashboard counters
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Stats
// @Router       /api/dashboard/stats [get]
func (ctrl *DashboardController) GetStats(c *fiber.Ctx) error {
	stats, err := ctrl.service.Current(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

func (ctrl *DashboardController) RefreshStats(c *fiber.Ctx) error {
	stats, err := ctrl.service.Refresh(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
