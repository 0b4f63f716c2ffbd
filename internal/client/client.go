package client

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/session"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/logger"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	heartbeatInterval = 5 * time.Second
)

// Client wraps the WebSocket connection to the game server. Decoded
// messages arrive on the receive channel; the identity assigned by the
// server is captured from the hello message.
type Client struct {
	ServerURL string
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	PlayerID   string
	PlayerName string
	Latency    int64

	mu     sync.RWMutex
	closed bool
}

// NewClient creates an unconnected client.
func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		send:      make(chan []byte, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// Connect dials the server and starts the pumps.
func (c *Client) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial(c.ServerURL, nil)
	if err != nil {
		return err
	}
	c.conn = conn

	go c.readPump()
	go c.writePump()
	return nil
}

func (c *Client) readPump() {
	defer c.Close()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logger.LogError("undecodable frame from server: %v", err)
			continue
		}

		switch msg.Type {
		case protocol.MsgConnected:
			var payload protocol.ConnectedPayload
			if err := json.Unmarshal(msg.Payload, &payload); err == nil {
				c.PlayerID = payload.PlayerID
				c.PlayerName = payload.PlayerName
			}
		case protocol.MsgPong:
			var payload protocol.PongPayload
			if err := json.Unmarshal(msg.Payload, &payload); err == nil {
				c.Latency = time.Now().UnixMilli() - payload.ClientTimestamp
			}
		}

		select {
		case c.receive <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Client) writePump() {
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
		case <-c.done:
			return
		}
	}
}

// SendMessage queues a message for delivery.
func (c *Client) SendMessage(msg *protocol.Message) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return errors.New("connection closed")
	}
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Receive blocks until the next message or the connection closes.
func (c *Client) Receive() (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-c.done:
		return nil, errors.New("connection closed")
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// IsConnected reports whether the connection is live.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// StartHeartbeat pings the server periodically so both sides can track
// latency.
func (c *Client) StartHeartbeat() {
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if c.IsConnected() {
					_ = c.Ping()
				}
			case <-c.done:
				return
			}
		}
	}()
}

// ParseGameState decodes a gameState broadcast.
func ParseGameState(msg *protocol.Message) (*session.Snapshot, error) {
	var snap session.Snapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// --- typed send helpers ---

// Ping sends a heartbeat carrying the local clock.
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// JoinRoom asks for a seat in the named room.
func (c *Client) JoinRoom(roomID, playerName string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomID:     roomID,
		PlayerName: playerName,
	}))
}

// RollDice rolls for the current turn.
func (c *Client) RollDice(roomID string) error {
	return c.roomIntent(protocol.MsgRollDice, roomID)
}

// BuyDevCard buys one development card.
func (c *Client) BuyDevCard(roomID string) error {
	return c.roomIntent(protocol.MsgBuyDevCard, roomID)
}

// PlayDevCard plays one held development card.
func (c *Client) PlayDevCard(roomID string, card board.DevCard) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPlayDevCard, protocol.PlayDevCardPayload{
		RoomID: roomID,
		Type:   card,
	}))
}

// VoteRestart casts this seat's restart vote after a win.
func (c *Client) VoteRestart(roomID string) error {
	return c.roomIntent(protocol.MsgVoteRestart, roomID)
}

// PassTurn ends the current turn.
func (c *Client) PassTurn(roomID string) error {
	return c.roomIntent(protocol.MsgPassTurn, roomID)
}

// MoveRobber places the robber on the given tile.
func (c *Client) MoveRobber(roomID string, hexID int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgMoveRobber, protocol.MoveRobberPayload{
		RoomID: roomID,
		HexID:  hexID,
	}))
}

// DiscardResource drops one unit toward a discard debt.
func (c *Client) DiscardResource(roomID string, res board.Resource) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgDiscardResource, protocol.DiscardResourcePayload{
		RoomID:   roomID,
		Resource: res,
	}))
}

// BankTrade exchanges four of one resource for one of another.
func (c *Client) BankTrade(roomID string, give, get board.Resource) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgBankTrade, protocol.BankTradePayload{
		RoomID: roomID,
		Give:   give,
		Get:    get,
	}))
}

// BuildSettlement places a settlement on the vertex, or upgrades an own
// one to a city. The adjacency lists the server validates against are
// derived here from the board geometry.
func (c *Client) BuildSettlement(roomID, vertexID string) error {
	if !ValidVertex(vertexID) {
		return errors.New("no such vertex")
	}
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgBuildSettlement, protocol.BuildSettlementPayload{
		RoomID:    roomID,
		VertexID:  vertexID,
		HexIDs:    VertexHexes(vertexID),
		Neighbors: VertexNeighbors(vertexID),
	}))
}

// BuildRoad places a road between two adjacent vertices.
func (c *Client) BuildRoad(roomID, v1, v2 string) error {
	if !ValidVertex(v1) || !ValidVertex(v2) {
		return errors.New("no such vertex")
	}
	adjacent := false
	for _, n := range VertexNeighbors(v1) {
		if n == v2 {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return errors.New("vertices are not adjacent")
	}
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgBuildRoad, protocol.BuildRoadPayload{
		RoomID: roomID,
		EdgeID: EdgeID(v1, v2),
		V1:     v1,
		V2:     v2,
	}))
}

// GetLeaderboard requests the all-time top list.
func (c *Client) GetLeaderboard(limit int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Limit: limit,
	}))
}

// AddKnight is the debug backdoor granting a free knight card.
func (c *Client) AddKnight(roomID string) error {
	return c.roomIntent(protocol.MsgDevAddKnight, roomID)
}

// AddResources is the debug backdoor granting five of each resource.
func (c *Client) AddResources(roomID string) error {
	return c.roomIntent(protocol.MsgDevAddResources, roomID)
}

func (c *Client) roomIntent(msgType protocol.MessageType, roomID string) error {
	return c.SendMessage(protocol.MustNewMessage(msgType, protocol.RoomPayload{RoomID: roomID}))
}
