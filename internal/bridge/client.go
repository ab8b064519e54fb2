package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// Client sends counts to a running tray over its websocket. It satisfies
// extractor.Sink and can do nothing else.
type Client struct {
	url    string
	dialer *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to the bridge at url (ws://host:port/ws).
func Dial(ctx context.Context, url string) (*Client, error) {
	c := &Client{
		url:    url,
		dialer: &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}
	go drain(conn)
	c.conn = conn
	return nil
}

// drain consumes error replies so control frames are processed.
func drain(conn *websocket.Conn) {
	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == TypeError {
			logging.Warn(logging.CatBridge, "Bridge rejected message", map[string]any{"id": msg.ID, "error": msg.Error})
		}
	}
}

// Send delivers one count. A broken connection is redialed once; if that
// fails the count is dropped and the next tick tries again.
func (c *Client) Send(count int) {
	data, err := json.Marshal(map[string]int{"count": count})
	if err != nil {
		return
	}
	msg := WSMessage{Type: TypeUnreadCount, ID: uuid.NewString(), Payload: data}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		if err := c.write(msg); err == nil {
			return
		}
		c.conn.Close()
		c.conn = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.connect(ctx); err != nil {
		logging.Warn(logging.CatBridge, "Dropping unread count", map[string]any{"count": count, "error": err.Error()})
		return
	}
	if err := c.write(msg); err != nil {
		logging.Warn(logging.CatBridge, "Dropping unread count", map[string]any{"count": count, "error": err.Error()})
	}
}

func (c *Client) write(msg WSMessage) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	err := c.conn.Close()
	c.conn = nil
	return err
}
