package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"shelfapi/internal/library"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Hub is the process-wide registry of connected realtime subscribers.
// Broadcasting never blocks the caller: events are enqueued onto each
// client's buffered send channel, and with no clients connected a broadcast
// is a deterministic no-op.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewHub(checkOrigin func(r *http.Request) bool, logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// ServeWS upgrades the request and registers the connection. No handshake
// payload is required; the client starts receiving events immediately.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client connected", "addr", conn.RemoteAddr().String(), "clients", n)

	go c.writePump()
	go c.readPump()
}

// BookAdded implements library.Broadcaster.
func (h *Hub) BookAdded(b library.Book) {
	h.broadcast(Event{Type: EventBookAdded, Book: &b})
}

// BookUpdated implements library.Broadcaster.
func (h *Hub) BookUpdated(b library.Book) {
	h.broadcast(Event{Type: EventBookUpdated, Book: &b})
}

// BookDeleted implements library.Broadcaster.
func (h *Hub) BookDeleted(id string) {
	h.broadcast(Event{Type: EventBookDeleted, ID: id})
}

func (h *Hub) broadcast(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		h.logger.Error("marshal event", "type", e.Type, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Client is not draining its buffer; drop it rather than
			// stall the mutation path.
			go h.drop(c)
		}
	}
	h.logger.Debug("event broadcast", "type", e.Type, "clients", len(h.clients))
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close tears down every connection. Broadcasts after Close are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("client disconnected", "addr", c.conn.RemoteAddr().String())
	}
}
