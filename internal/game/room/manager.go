// Package room owns the registry of live game rooms: one session per
// room identifier, created on first join and destroyed whole when any
// member disconnects.
package room

import (
	"math/rand"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/session"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/logger"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

// Client is the transport-side view of a connected participant. The
// concrete type lives in the server package; the interface breaks the
// import cycle.
type Client interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetRoom() string
	SetRoom(roomID string)
	SendMessage(msg *protocol.Message)
	Close()
}

// Room binds a session to the connections seated in it.
type Room struct {
	ID      string
	Session *session.Session

	clients map[string]Client
}

// Broadcast sends msg to every connection in the room.
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, c := range r.clients {
		c.SendMessage(msg)
	}
}

// BroadcastState sends the current session snapshot to every member.
// Called after every accepted mutation.
func (r *Room) BroadcastState() {
	r.Broadcast(protocol.MustNewMessage(protocol.MsgGameState, r.Session.Snapshot()))
}

// Manager is the owned registry of rooms. It is driven exclusively by
// the server's dispatch loop, so it needs no locking; the loop is the
// single writer and reader.
type Manager struct {
	rooms    map[string]*Room
	maxSeats int
	rng      *rand.Rand
}

// NewManager creates an empty registry. The rand source seeds every
// session created through it.
func NewManager(maxSeats int, rng *rand.Rand) *Manager {
	if maxSeats <= 0 || maxSeats > session.MaxSeats {
		maxSeats = session.MaxSeats
	}
	return &Manager{
		rooms:    make(map[string]*Room),
		maxSeats: maxSeats,
		rng:      rng,
	}
}

// Get resolves a room identifier, or nil if no such room is live.
func (m *Manager) Get(roomID string) *Room {
	return m.rooms[roomID]
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	return len(m.rooms)
}

// Join seats the client in the named room, creating the room on first
// use. The session auto-initializes once two seats are filled. Join is
// rejected when all seats are taken; there is no spectator mode.
func (m *Manager) Join(c Client, roomID, playerName string) (*Room, error) {
	r, ok := m.rooms[roomID]
	if !ok {
		r = &Room{
			ID:      roomID,
			Session: session.New(m.rng),
			clients: make(map[string]Client),
		}
		m.rooms[roomID] = r
	}

	if len(m.rooms[roomID].clients) >= m.maxSeats {
		return nil, session.ErrSeatsFull
	}
	if err := r.Session.AddPlayer(c.GetID(), playerName); err != nil {
		// Drop a room this failed join had just created.
		if len(r.clients) == 0 {
			delete(m.rooms, roomID)
		}
		return nil, err
	}

	r.clients[c.GetID()] = c
	c.SetRoom(roomID)
	logger.LogInfo("player %s (%s) joined room %s", c.GetName(), c.GetID(), roomID)
	return r, nil
}

// Leave destroys the entire room the client belonged to and tells the
// remaining members. A seat cannot be vacated individually; the session
// does not survive any member leaving.
func (m *Manager) Leave(c Client) {
	roomID := c.GetRoom()
	if roomID == "" {
		return
	}
	r, ok := m.rooms[roomID]
	if !ok {
		return
	}

	delete(m.rooms, roomID)
	delete(r.clients, c.GetID())
	c.SetRoom("")
	for _, member := range r.clients {
		member.SetRoom("")
	}
	r.Broadcast(protocol.MustNewMessage(protocol.MsgRoomDestroyed, nil))
	logger.LogInfo("room %s destroyed (player %s left)", roomID, c.GetID())
}
