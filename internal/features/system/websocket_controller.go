package system

import (
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/realtime"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const uidLocalsKey = "feed_uid"

type WebSocketController struct {
	hub *realtime.Hub
}

func NewWebSocketController(hub *realtime.Hub) *WebSocketController {
	return &WebSocketController{hub: hub}
}

// Accept carries the verified uid over to the websocket handler
func (h *WebSocketController) Accept(c *fiber.Ctx) error {
	c.Locals(uidLocalsKey, middleware.CurrentIdentity(c).UID)
	return c.Next()
}

// Serve subscribes the connection to the notification feed until it closes
func (h *WebSocketController) Serve(conn *websocket.Conn) {
	uid, _ := conn.Locals(uidLocalsKey).(string)
	client := realtime.NewClient(uid, conn, h.hub)
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}
