package inner_group

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	controller *TemplateController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewTemplateApi(controller *TemplateController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &TemplateApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *TemplateApi) Setup(app *fiber.App) {
	templates := app.Group("/api/inner-groups",
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionManageGroups),
	)

	templates.Get("/", h.controller.List)
	templates.Post("/", h.controller.Create)
	templates.Put("/:id", h.controller.Update)
	templates.Delete("/:id", h.controller.Delete)
	templates.Post("/:id/apply", h.controller.Apply)
}
