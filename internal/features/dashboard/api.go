package dashboard

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	controller *DashboardController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewDashboardApi(controller *DashboardController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &DashboardApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboard",
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionDashboard),
	)

	group.Get("/stats", h.controller.GetStats)
	group.Post("/stats/refresh", h.controller.RefreshStats)
}
