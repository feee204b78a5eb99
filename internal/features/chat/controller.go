package chat

import (
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ChatController struct {
	Service ChatService
}

func NewChatController(service ChatService) *ChatController {
	return &ChatController{Service: service}
}

// ListChats godoc
// @Summary      List direct and inner-group chats
// @Tags         chats
// @Produce      json
// @Router       /api/chats [get]
func (ctrl *ChatController) ListChats(c *fiber.Ctx) error {
	chats, err := ctrl.Service.ListChats(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"chats":   chats,
	})
}

// GetChat godoc
// @Summary      Read a chat's messages, whatever layout stores them
// @Tags         chats
// @Produce      json
// @Param        chatId  path  string  true  "Chat, group or {groupId}_{innerGroupId} id"
// @Router       /api/chats/{chatId} [get]
func (ctrl *ChatController) GetChat(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	conv, err := ctrl.Service.GetChat(c.UserContext(), chatID)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":    apperr.Message(err),
				"chatId":   chatID,
				"chatType": "unknown",
			})
		}
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"chatId":       conv.ChatID,
		"chatType":     conv.ChatType,
		"messageCount": len(conv.Messages),
		"messages":     conv.Messages,
	})
}

func (ctrl *ChatController) DeleteChat(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	loc, deleted, err := ctrl.Service.DeleteChat(c.UserContext(), chatID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Chat deleted successfully",
		"chatId":          chatID,
		"chatType":        loc.Kind,
		"deletedMessages": deleted,
	})
}

func (ctrl *ChatController) ArchiveChat(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	loc, err := ctrl.Service.ArchiveChat(c.UserContext(), chatID, middleware.CurrentIdentity(c).UID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Chat archived successfully",
		"chatId":   chatID,
		"chatType": loc.Kind,
	})
}

func (ctrl *ChatController) DeleteMessage(c *fiber.Ctx) error {
	chatID, messageID := c.Params("chatId"), c.Params("messageId")
	loc, err := ctrl.Service.DeleteMessage(c.UserContext(), chatID, messageID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Message deleted successfully",
		"chatId":    chatID,
		"messageId": messageID,
		"chatType":  loc.Kind,
	})
}
