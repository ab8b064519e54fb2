// Package bridge carries unread counts from the page to the tray over a
// loopback websocket.
package bridge

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// Message types.
const (
	TypeUnreadCount = "unread-count"
	TypeError       = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WSMessage is the envelope for every websocket frame.
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CountPayload is the payload of an unread-count message.
type CountPayload struct {
	Count *int `json:"count"`
}

// CountHandler receives every valid count.
type CountHandler func(count int)

// WSHub tracks connected pages.
type WSHub struct {
	clients    map[*WSClient]bool
	register   chan *WSClient
	unregister chan *WSClient
	stop       chan struct{}
	mu         sync.RWMutex

	// onChange is called from the hub goroutine with the new connection count.
	onChange func(n int)
}

// NewWSHub creates a hub. onChange may be nil.
func NewWSHub(onChange func(n int)) *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		stop:       make(chan struct{}),
		onChange:   onChange,
	}
}

// Run processes registrations until Stop is called.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			logging.Info(logging.CatBridge, "Page connected", map[string]any{"conn": client.id, "connections": n})
			h.changed(n)

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			if ok {
				logging.Info(logging.CatBridge, "Page disconnected", map[string]any{"conn": client.id, "connections": n})
				h.changed(n)
			}

		case <-h.stop:
			return
		}
	}
}

// Stop ends Run. It must be called at most once.
func (h *WSHub) Stop() {
	close(h.stop)
}

// Count returns the number of connected pages.
func (h *WSHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *WSHub) changed(n int) {
	if h.onChange != nil {
		h.onChange(n)
	}
}

// WSClient is one connected page.
type WSClient struct {
	id      string
	hub     *WSHub
	conn    *websocket.Conn
	send    chan []byte
	onCount CountHandler
}

func newWSClient(hub *WSHub, conn *websocket.Conn, onCount CountHandler) *WSClient {
	return &WSClient{
		id:      uuid.NewString(),
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		onCount: onCount,
	}
}

func (c *WSClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stop:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn(logging.CatBridge, "Websocket read failed", map[string]any{"conn": c.id, "error": err.Error()})
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("", "invalid message format")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// handleMessage dispatches one decoded frame. Counts are not acknowledged.
func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case TypeUnreadCount:
		count, err := decodeCount(msg.Payload)
		if err != nil {
			c.sendError(msg.ID, err.Error())
			return
		}
		logging.Debug(logging.CatBridge, "Unread count received", map[string]any{"conn": c.id, "count": count})
		if c.onCount != nil {
			c.onCount(count)
		}
	default:
		c.sendError(msg.ID, fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

func decodeCount(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing payload")
	}
	var p CountPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, fmt.Errorf("invalid payload: %w", err)
	}
	if p.Count == nil {
		return 0, fmt.Errorf("missing count")
	}
	if *p.Count < 0 {
		return 0, fmt.Errorf("count must not be negative")
	}
	return *p.Count, nil
}

func (c *WSClient) sendError(id, message string) {
	data, err := json.Marshal(WSMessage{Type: TypeError, ID: id, Error: message})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		logging.Warn(logging.CatBridge, "Dropping reply to slow client", map[string]any{"conn": c.id})
	}
}
