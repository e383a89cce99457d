package api

import (
	"net/http"
	"sync"
	"time"

	applogger "TradeLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is consumed by browser dashboards on other origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsEnvelope struct {
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans events out to connected websocket clients. Implements the
// usecase Broadcaster interface.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *applogger.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *applogger.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

// Broadcast sends one event to every client. Clients that fail to accept
// the write are dropped.
func (h *Hub) Broadcast(event string, payload interface{}) {
	msg := wsEnvelope{Event: event, Payload: payload, Timestamp: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("websocket write failed", applogger.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away. Inbound frames are discarded; the socket is
// push-only.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("websocket client connected", applogger.Int("clients", n))

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// ClientCount reports connected clients. Used by the root status endpoint.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
