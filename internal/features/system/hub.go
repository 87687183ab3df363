package system

import (
	"sync"

	"go-travelops/internal/features/pipeline"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans pipeline state transitions out to connected builder clients.
// Implements pipeline.EventSink.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Publish broadcasts an event to every connected client. Writes that fail
// drop the client; the read loop will clean up the connection.
func (h *Hub) Publish(event pipeline.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("dropping websocket client", zap.Error(err))
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
