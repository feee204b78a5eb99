package call

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CallApi struct {
	controller *CallController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewCallApi(controller *CallController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &CallApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *CallApi) Setup(app *fiber.App) {
	calls := app.Group("/api/agora", middleware.AuthMiddleware(h.verifier))

	calls.Get("/token", h.controller.Status)
	calls.Post("/token", middleware.OptionalGrant(h.resolver), h.controller.IssueToken)
}
