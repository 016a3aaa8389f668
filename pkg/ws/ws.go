// Package ws provides WebSocket support for Vastra using gorilla/websocket.
//
// # Quick start
//
//	// In your route file:
//	router.Get("/ws/orders", "ws.orders", ctx.Wrap(func(c *ctx.Context) {
//	    ws.UpgradeKeyed(c.W, c.R, OrderHub, strconv.Itoa(int(c.UserID())))
//	}))
//
//	// Define a hub and start it:
//	var OrderHub = ws.NewHub()
//	func init() { go OrderHub.Run() }
//
//	// Push to one user's connections:
//	OrderHub.SendTo("42", []byte(`{"order_id":7,"status":"Shipped"}`))
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512 KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client represents a single connected WebSocket client.
// key groups connections belonging to the same user; one user may hold
// several connections (multiple tabs, devices).
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	key  string
}

// Key returns the identity this client connected with ("" for anonymous).
func (c *Client) Key() string { return c.key }

// readPump pumps messages from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			break
		}
		c.hub.Inbound <- Message{Client: c, Data: msg}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues a message to be sent to this specific client.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
		// Buffer full — drop message.
	}
}

// ─── Hub ──────────────────────────────────────────────────────────────────────

// Message is an inbound message received from a client.
type Message struct {
	Client *Client
	Data   []byte
}

// directed is a message addressed to every connection of one key.
type directed struct {
	key  string
	data []byte
}

// Hub maintains all active WebSocket connections and handles broadcasting.
type Hub struct {
	clients    map[*Client]bool
	byKey      map[string]map[*Client]bool
	Broadcast  chan []byte  // send to all connected clients
	Inbound    chan Message // messages received from clients
	directed   chan directed
	register   chan *Client
	unregister chan *Client
	// OnMessage is called for every inbound message (optional).
	OnMessage func(hub *Hub, msg Message)
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byKey:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan []byte, 256),
		Inbound:    make(chan Message, 256),
		directed:   make(chan directed, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SendTo queues data for every connection registered under key.
// No-op when the user has no open connections.
func (h *Hub) SendTo(key string, data []byte) {
	select {
	case h.directed <- directed{key: key, data: data}:
	default:
		// Hub overloaded — drop rather than block the caller.
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if client.key != "" {
				if h.byKey[client.key] == nil {
					h.byKey[client.key] = make(map[*Client]bool)
				}
				h.byKey[client.key][client] = true
			}
			logger.Info("ws: client connected", "key", client.key, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				logger.Info("ws: client disconnected", "key", client.key, "total", len(h.clients))
			}

		case msg := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					h.drop(client)
				}
			}

		case d := <-h.directed:
			for client := range h.byKey[d.key] {
				select {
				case client.send <- d.data:
				default:
					h.drop(client)
				}
			}

		case msg := <-h.Inbound:
			if h.OnMessage != nil {
				h.OnMessage(h, msg)
			}
		}
	}
}

// drop removes a client from both indexes and closes its send channel.
// Must only be called from the Run loop.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	if client.key != "" {
		if set := h.byKey[client.key]; set != nil {
			delete(set, client)
			if len(set) == 0 {
				delete(h.byKey, client.key)
			}
		}
	}
	close(client.send)
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int { return len(h.clients) }

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades an HTTP connection to a WebSocket and registers the
// resulting client with the given hub.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub) {
	UpgradeKeyed(w, r, hub, "")
}

// UpgradeKeyed upgrades the connection and registers it under key so
// Hub.SendTo can address all of this user's connections.
func UpgradeKeyed(w http.ResponseWriter, r *http.Request, hub *Hub, key string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), key: key}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
