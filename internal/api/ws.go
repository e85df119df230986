package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aquila/marenostrum/internal/engine"
)

const (
	writeWait      = 10 * time.Second
	clientBuffer   = 8 // snapshots queued per client before it is dropped
	maxStreamConns = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Snapshots are world-readable; the command surface is what's gated.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans world snapshots out to connected renderers. Slow clients are
// disconnected rather than allowed to back-pressure the tick loop.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast sends a snapshot to every connected client. Called from the
// engine's tick hook; never blocks.
func (h *Hub) Broadcast(snap engine.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Debug("snapshot marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Client can't keep up; cut it loose.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) handleStream(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	full := len(h.clients) >= maxStreamConns
	h.mu.Unlock()
	if full {
		http.Error(w, "too many stream connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("stream client connected", "remote", conn.RemoteAddr().String())

	go c.writePump()
	go h.readPump(c)
}

// readPump discards inbound frames; its job is noticing the close.
func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("stream read error", "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	// Hub closed the channel: say goodbye properly.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}
