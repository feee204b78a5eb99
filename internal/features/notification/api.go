package notification

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/config"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	config     *config.Config
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewNotificationApi(controller *NotificationController, config *config.Config, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &NotificationApi{
		controller: controller,
		config:     config,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications", middleware.AuthMiddleware(h.verifier))

	limit := middleware.RateLimiter(h.config.NotifyRateLimit, h.config.NotifyRateWindow)
	notify := middleware.RequirePermission(h.resolver, access.PermissionNotifications)

	// App users may send single notifications unless that is switched off
	single := notify
	if h.config.NotifyUserSenders {
		single = middleware.OptionalGrant(h.resolver)
	}

	group.Post("/send", single, limit, h.controller.Send)
	group.Post("/send-bulk", notify, limit, h.controller.SendBulk)
	group.Get("/logs", notify, h.controller.ListLogs)
	group.Get("/logs/export", notify, h.controller.ExportLogs)
}
