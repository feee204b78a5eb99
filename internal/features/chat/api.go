package chat

import (
	"amigo-admin/internal/access"
	"amigo-admin/internal/common/api"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ChatApi struct {
	controller *ChatController
	verifier   identity.Verifier
	resolver   access.Resolver
}

func NewChatApi(controller *ChatController, verifier identity.Verifier, resolver access.Resolver) api.Route {
	return &ChatApi{
		controller: controller,
		verifier:   verifier,
		resolver:   resolver,
	}
}

func (h *ChatApi) Setup(app *fiber.App) {
	chats := app.Group("/api/chats",
		middleware.AuthMiddleware(h.verifier),
		middleware.RequirePermission(h.resolver, access.PermissionManageChats),
	)

	chats.Get("/", h.controller.ListChats)
	chats.Get("/:chatId", h.controller.GetChat)
	chats.Delete("/:chatId", h.controller.DeleteChat)
	chats.Post("/:chatId/archive", h.controller.ArchiveChat)
	chats.Delete("/:chatId/messages/:messageId", h.controller.DeleteMessage)
}
