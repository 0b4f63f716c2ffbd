package protocol

import "github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"

// --- Client request payloads ---

// PingPayload carries the client's send time.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// JoinRoomPayload asks for a seat in the named room, creating it on
// first use.
type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// RoomPayload is shared by intents that need no arguments beyond the
// room: rollDice, buyDevCard, voteRestart, passTurn and the debug
// intents.
type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// PlayDevCardPayload plays one held development card.
type PlayDevCardPayload struct {
	RoomID string        `json:"roomId"`
	Type   board.DevCard `json:"type"`
}

// MoveRobberPayload relocates the robber to the given tile.
type MoveRobberPayload struct {
	RoomID string `json:"roomId"`
	HexID  int    `json:"hexId"`
}

// DiscardResourcePayload drops one unit toward a discard debt.
type DiscardResourcePayload struct {
	RoomID   string         `json:"roomId"`
	Resource board.Resource `json:"resType"`
}

// BankTradePayload exchanges four of one resource for one of another.
type BankTradePayload struct {
	RoomID string         `json:"roomId"`
	Give   board.Resource `json:"give"`
	Get    board.Resource `json:"get"`
}

// BuildSettlementPayload places a settlement (or upgrades an own one to
// a city). The client supplies the board geometry: the tiles adjacent to
// the vertex and the neighboring vertices for the distance rule.
type BuildSettlementPayload struct {
	RoomID    string   `json:"roomId"`
	VertexID  string   `json:"vertexId"`
	HexIDs    []int    `json:"hexIds"`
	Neighbors []string `json:"neighbors"`
}

// BuildRoadPayload places a road on the edge between two vertices.
type BuildRoadPayload struct {
	RoomID string `json:"roomId"`
	EdgeID string `json:"edgeId"`
	V1     string `json:"v1"`
	V2     string `json:"v2"`
}

// GetLeaderboardPayload requests the top entries; a zero limit means the
// server default.
type GetLeaderboardPayload struct {
	Limit int `json:"limit,omitempty"`
}

// --- Server response payloads ---

// ConnectedPayload is the hello sent right after the WebSocket upgrade.
type ConnectedPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// PongPayload answers a ping.
type PongPayload struct {
	ClientTimestamp int64 `json:"clientTimestamp"`
	ServerTimestamp int64 `json:"serverTimestamp"`
}

// CardBoughtPayload privately tells the buyer which card was drawn.
type CardBoughtPayload struct {
	Card board.DevCard `json:"card"`
}

// VisualCardPlayPayload is a room-wide ephemeral effect when a card is
// played; it carries no game state.
type VisualCardPlayPayload struct {
	PlayerName string        `json:"player"`
	Type       board.DevCard `json:"type"`
}

// LeaderboardEntry is one row of the all-time leaderboard.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Wins  int    `json:"wins"`
	Games int    `json:"games"`
}

// LeaderboardPayload answers getLeaderboard.
type LeaderboardPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// The gameState payload is the session snapshot itself
// (session.Snapshot); it is marshaled directly and needs no mirror type
// here.
