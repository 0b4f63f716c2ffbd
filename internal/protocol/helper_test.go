package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	msg := MustNewMessage(MsgJoinRoom, JoinRoomPayload{RoomID: "R1", PlayerName: "Dana"})

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgJoinRoom, decoded.Type)

	payload, err := ParsePayload[JoinRoomPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "R1", payload.RoomID)
	assert.Equal(t, "Dana", payload.PlayerName)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestParsePayloadWrongShape(t *testing.T) {
	msg := MustNewMessage(MsgMoveRobber, MoveRobberPayload{RoomID: "R1", HexID: 4})

	// A struct with mismatched field types must fail to parse.
	type bad struct {
		HexID string `json:"hexId"`
	}
	_, err := ParsePayload[bad](msg)
	assert.Error(t, err)

	payload, err := ParsePayload[MoveRobberPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 4, payload.HexID)
}

func TestNewMessageNilPayload(t *testing.T) {
	msg := MustNewMessage(MsgRoomDestroyed, nil)
	data, err := msg.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"roomDestroyed"}`, string(data))
}

func TestBuildSettlementWireNames(t *testing.T) {
	// The wire field names are load-bearing: the browser client reads
	// them verbatim.
	msg := MustNewMessage(MsgBuildSettlement, BuildSettlementPayload{
		RoomID:    "R1",
		VertexID:  "0,0N",
		HexIDs:    []int{0, 1, 4},
		Neighbors: []string{"1,-1S"},
	})
	data, err := msg.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"vertexId"`)
	assert.Contains(t, string(data), `"hexIds"`)
	assert.Contains(t, string(data), `"neighbors"`)
}

func TestDiscardPayloadResourceType(t *testing.T) {
	msg := MustNewMessage(MsgDiscardResource, DiscardResourcePayload{
		RoomID:   "R1",
		Resource: board.Wood,
	})
	data, err := msg.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"resType":"WOOD"`)
}
