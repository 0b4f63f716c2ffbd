// Package testutil provides shared test doubles.
package testutil

import (
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

// MockClient implements room.Client and records every message sent to
// it, so tests can assert on broadcasts.
type MockClient struct {
	ID       string
	Name     string
	RoomID   string
	Messages []*protocol.Message
	Closed   bool
}

func (m *MockClient) GetID() string    { return m.ID }
func (m *MockClient) GetName() string  { return m.Name }
func (m *MockClient) SetName(n string) { m.Name = n }
func (m *MockClient) GetRoom() string  { return m.RoomID }
func (m *MockClient) SetRoom(r string) { m.RoomID = r }
func (m *MockClient) Close()           { m.Closed = true }

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Messages = append(m.Messages, msg)
}

// LastOfType returns the newest recorded message of the given type, or
// nil.
func (m *MockClient) LastOfType(t protocol.MessageType) *protocol.Message {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Type == t {
			return m.Messages[i]
		}
	}
	return nil
}

// CountOfType returns how many recorded messages have the given type.
func (m *MockClient) CountOfType(t protocol.MessageType) int {
	n := 0
	for _, msg := range m.Messages {
		if msg.Type == t {
			n++
		}
	}
	return n
}
