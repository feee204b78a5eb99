package audit

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewAuditApi(controller *AuditController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &AuditApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	audit := app.Group("/api/audit-logs",
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionAdminManagement),
	)

	audit.Get("/", h.controller.ListLogs)
}
