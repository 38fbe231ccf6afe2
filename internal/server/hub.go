package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	sendBuffer     = 64
)

// clientMessage is what a WebSocket client sends
type clientMessage struct {
	Action string   `json:"action"`
	Names  []string `json:"names,omitempty"`
}

// serverMessage is what the server pushes
type serverMessage struct {
	Type    string         `json:"type"` // "state" or "error"
	State   *game.State    `json:"state,omitempty"`
	Applied *bool          `json:"applied,omitempty"`
	Error   *errorResponse `json:"error,omitempty"`
}

// Hub tracks WebSocket clients and fans out state changes.
type Hub struct {
	server   *Server
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

func newHub(s *Server, logger *log.Logger) *Hub {
	return &Hub{
		server: s,
		logger: logger.WithPrefix("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}

	// Broadcasts happen under the server lock, so holding it while
	// registering keeps the first snapshot ahead of any later one.
	h.server.mu.Lock()
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	state := h.server.game.State()
	c.enqueue(encode(serverMessage{Type: "state", State: &state}))
	h.server.mu.Unlock()
	h.logger.Info("Client connected", "total", total)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Info("Client disconnected", "total", total)
	}
}

func (h *Hub) broadcastState(state game.State) {
	msg := encode(serverMessage{Type: "state", State: &state})
	if msg == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.enqueue(msg)
	}
	h.logger.Debug("Broadcast state", "phase", state.Phase, "recipients", len(h.clients))
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.close()
	}
}

func encode(msg serverMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to encode message", "error", err)
		return nil
	}
	return data
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// enqueue never blocks; a client that cannot keep up is dropped.
func (c *client) enqueue(msg []byte) {
	if msg == nil {
		return
	}
	select {
	case <-c.ctx.Done():
	case c.send <- msg:
	default:
		c.hub.logger.Warn("Client send buffer full, closing connection")
		go c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		c.cancel()
		c.hub.remove(c)
		_ = c.conn.Close()
	})
}

func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("WebSocket error", "error", err)
			}
			return
		}
		c.handle(msg)
	}
}

// handle applies a client action. Successful changes reach this client
// through the broadcast; refused ones are answered directly.
func (c *client) handle(msg clientMessage) {
	state, applied, err := c.hub.server.Do(msg.Action, msg.Names)
	switch {
	case err != nil:
		_, body := errorBody(err)
		c.enqueue(encode(serverMessage{Type: "error", Error: &body}))
	case !applied:
		c.enqueue(encode(serverMessage{Type: "state", State: &state, Applied: &applied}))
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
