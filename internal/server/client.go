package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/logger"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

const (
	// Write timeout.
	writeWait = 10 * time.Second

	// Read timeout (pong wait).
	pongWait = 60 * time.Second

	// Ping interval, must be below pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size.
	maxMessageSize = 4096
)

// Client is one connected participant.
type Client struct {
	ID   string
	Name string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	roomID string
	closed bool
}

// NewClient wraps a freshly upgraded connection.
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// ReadPump reads frames and forwards decoded messages to the server's
// dispatch loop. It never touches game state itself; all mutation
// happens on the loop goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.server.enqueueDisconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.LogError("read error from %s: %v", c.ID, err)
			}
			break
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			// Malformed frames are dropped without a reply, like any
			// other invalid intent.
			logger.LogInfo("dropping undecodable frame from %s: %v", c.ID, err)
			continue
		}

		c.server.enqueueMessage(c, msg)
	}
}

// WritePump writes queued frames and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a message for delivery. A participant with a full
// buffer is disconnected rather than allowed to stall the broadcast.
func (c *Client) SendMessage(msg *protocol.Message) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		logger.LogError("encode error: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		logger.LogError("send buffer full for client %s, closing", c.ID)
		c.Close()
	}
}

// Close shuts down the outbound queue.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// GetID returns the participant identity bound to this connection.
func (c *Client) GetID() string { return c.ID }

// GetName returns the display name chosen at join time.
func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Name
}

// SetName stores the display name.
func (c *Client) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Name = name
}

// SetRoom records which room the client is seated in.
func (c *Client) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the client's room, or empty.
func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}
