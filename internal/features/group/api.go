package group

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type GroupApi struct {
	controller *GroupController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewGroupApi(controller *GroupController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &GroupApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *GroupApi) Setup(app *fiber.App) {
	groups := app.Group("/api/groups",
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionManageGroups),
	)

	groups.Get("/", h.controller.ListGroups)
	groups.Post("/", h.controller.CreateGroup)
	groups.Delete("/", h.controller.DeleteGroup)
	groups.Delete("/:groupId", h.controller.DeleteGroup)
	groups.Post("/:groupId/members", h.controller.AddMember)
	groups.Delete("/:groupId/members/:userId", h.controller.RemoveMember)
	groups.Post("/:groupId/inner-groups", h.controller.AddInnerGroup)
	groups.Put("/:groupId/inner-groups", h.controller.ReplaceInnerGroups)
}
