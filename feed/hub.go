package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

func (c *client) writeLoop() {
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// Hub fans messages out to connected spectators. Publishing never blocks: a
// client whose buffer is full misses the message.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	last     []byte
	buffer   int
	dropped  atomic.Uint64
	upgrader websocket.Upgrader
}

// NewHub creates a hub with buffer queued messages per client.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		buffer:  buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP upgrades the request and streams messages until the peer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("feed upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.buffer), done: make(chan struct{})}
	h.add(c)
	defer h.remove(c)
	go c.writeLoop()

	// Spectators do not send anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	slog.Debug("feed client connected", "clients", len(h.clients))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	c.close()
	slog.Debug("feed client disconnected", "clients", n)
}

// PublishFrame broadcasts f and keeps it for clients that connect later.
func (h *Hub) PublishFrame(f Frame) error {
	f.Type = TypeFrame
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	h.broadcast(data, true)
	return nil
}

// PublishSessionEnd broadcasts a session end message.
func (h *Hub) PublishSessionEnd(m SessionEnd) error {
	m.Type = TypeSessionEnd
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal session end: %w", err)
	}
	h.broadcast(data, false)
	return nil
}

func (h *Hub) broadcast(data []byte, keep bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if keep {
		h.last = data
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many messages were skipped for slow clients.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
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
