package system

import (
	"strings"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	controller *WebSocketController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewWebSocketApi(controller *WebSocketController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &WebSocketApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Get("/api/ws/notifications",
		requireUpgrade,
		tokenFromQuery,
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionNotifications),
		h.controller.Accept,
		websocket.New(h.controller.Serve),
	)
}

func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// tokenFromQuery lets browsers, which cannot set headers on a websocket
// handshake, pass the ID token as ?token=
func tokenFromQuery(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		if token := strings.TrimSpace(c.Query("token")); token != "" {
			c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	return c.Next()
}
