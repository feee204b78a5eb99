package user

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewUserApi(controller *UserController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &UserApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

// Setup registers all user-related routes
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users",
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionDashboard),
	)

	users.Get("/", h.controller.ListUsers)
	users.Get("/export", h.controller.ExportUsers)
	users.Get("/:userId", h.controller.GetUser)
	users.Put("/:userId/role", h.controller.UpdateRole)
	users.Put("/:userId/call-access", h.controller.UpdateCallAccess)
}
