package system

import (
	"github.com/gofiber/contrib/websocket"
)

type WebSocketController struct {
	Hub *Hub
}

func NewWebSocketController(hub *Hub) *WebSocketController {
	return &WebSocketController{Hub: hub}
}

// HandleWebSocket keeps the connection registered with the hub for
// pipeline event broadcasts. The feed is one-way; inbound messages are
// read only to detect the client going away.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	h.Hub.Register(c)
	defer func() {
		h.Hub.Unregister(c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
