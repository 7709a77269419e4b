package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Event is the wire envelope broadcast to connected clients
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans out field and task events to every connected websocket client.
// Clients are read-only listeners; inbound messages are discarded.
type Hub struct {
	clients    map[*client]bool
	clientsMu  sync.RWMutex
	register   chan *client
	unregister chan *client
	logger     *zap.Logger
}

// NewHub creates a hub and starts its registration loop
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.clientsMu.Unlock()
			h.logger.Info("Realtime client connected", zap.Int("clients", count))

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.clientsMu.Unlock()
			h.logger.Info("Realtime client disconnected", zap.Int("clients", count))
		}
	}
}

// Publish broadcasts an event to every connected client. Slow clients are
// dropped rather than blocking the publisher.
func (h *Hub) Publish(event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("Failed to marshal realtime event",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			go func(c *client) { h.unregister <- c }(c)
		}
	}
}

// HandleWebSocket godoc
// @Summary      Realtime event stream
// @Description  Upgrades to a WebSocket that streams field and value change events
// @Tags         websocket
// @Success      101 {string} string "Switching Protocols"
// @Router       /ws [get]
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	cl := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register <- cl

	go h.writePump(cl)
	go h.readPump(cl)
}

func (h *Hub) readPump(cl *client) {
	defer func() {
		h.unregister <- cl
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case message, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
