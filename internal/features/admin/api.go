package admin

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AdminApi struct {
	Controller *AdminController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewAdminApi(controller *AdminController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &AdminApi{
		Controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

// Setup registers admin management routes
func (h *AdminApi) Setup(app *fiber.App) {
	admins := app.Group("/api/admins", middleware.AuthMiddleware(h.verifier))

	// Any active admin may read its own capability set
	admins.Get("/permissions", middleware.RequireAdmin(h.resolver), h.Controller.MyPermissions)

	manage := middleware.RequirePermission(h.resolver, access.PermissionAdminManagement)
	admins.Get("/", manage, h.Controller.ListAdmins)
	admins.Post("/", manage, h.Controller.CreateAdmin)
	admins.Put("/:adminId", manage, h.Controller.UpdateAdmin)
	admins.Delete("/:adminId", manage, h.Controller.DeleteAdmin)
	admins.Put("/:adminId/status", manage, h.Controller.UpdateStatus)
}
