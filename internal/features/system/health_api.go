package system

import (
	"time"

	"amigo-admin/internal/common/api"
	"amigo-admin/internal/config"
	"amigo-admin/internal/realtime"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	config *config.Config
	hub    *realtime.Hub
}

func NewHealthApi(cfg *config.Config, hub *realtime.Hub) api.Route {
	return &HealthApi{config: cfg, hub: hub}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.health)
}

// health godoc
// @Summary      Liveness check
// @Tags         system
// @Produce      json
// @Router       /health [get]
func (h *HealthApi) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"app":         h.config.AppId,
		"environment": h.config.Environment,
		"feedClients": h.hub.Count(),
		"timestamp":   time.Now().UTC(),
	})
}
