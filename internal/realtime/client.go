package realtime

import (
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is one websocket session subscribed to the feed
type Client struct {
	ID   string
	UID  string
	Conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

func NewClient(uid string, conn *websocket.Conn, hub *Hub) *Client {
	c := &Client{
		ID:   uuid.NewString(),
		UID:  uid,
		Conn: conn,
		hub:  hub,
		send: make(chan []byte, 32),
	}
	c.greet()
	return c
}

// greet queues the connected event ahead of any broadcast
func (c *Client) greet() {
	data, err := json.Marshal(Event{
		Type:      EventConnected,
		Payload:   map[string]string{"clientId": c.ID},
		Timestamp: time.Now().UTC(),
	})
	if err == nil {
		c.send <- data
	}
}

// ReadPump only services control frames; the feed is one-way
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("feed read failed", zap.String("client_id", c.ID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
