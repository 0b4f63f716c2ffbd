// Package protocol defines the JSON wire format between client and
// server. Message type names match the browser client's event names so
// existing clients stay compatible.
package protocol

import "encoding/json"

// Message is the envelope of every frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType identifies the intent or event carried by a message.
type MessageType string

// Client → server message types.
const (
	MsgPing MessageType = "ping" // keepalive

	MsgJoinRoom MessageType = "joinRoom" // take a seat in a room

	// Game intents. Each carries the room identifier; the sender's
	// connection supplies the acting identity.
	MsgRollDice        MessageType = "rollDice"
	MsgBuyDevCard      MessageType = "buyDevCard"
	MsgPlayDevCard     MessageType = "playDevCard"
	MsgVoteRestart     MessageType = "voteRestart"
	MsgMoveRobber      MessageType = "moveRobber"
	MsgDiscardResource MessageType = "discardResource"
	MsgBankTrade       MessageType = "bankTrade"
	MsgBuildSettlement MessageType = "buildSettlement"
	MsgBuildRoad       MessageType = "buildRoad"
	MsgPassTurn        MessageType = "passTurn"

	// Leaderboard query.
	MsgGetLeaderboard MessageType = "getLeaderboard"

	// Debug backdoors for tests and demos; they bypass all rule checks.
	MsgDevAddKnight    MessageType = "dev_addKnight"
	MsgDevAddResources MessageType = "dev_addResources"
)

// Server → client message types.
const (
	MsgConnected MessageType = "connected" // hello with assigned identity
	MsgPong      MessageType = "pong"

	MsgGameState       MessageType = "gameState"       // full snapshot after each accepted mutation
	MsgCardBoughtInfo  MessageType = "cardBoughtInfo"  // private: which card the buyer drew
	MsgVisualCardPlay  MessageType = "visualCardPlay"  // room-wide ephemeral card-play effect
	MsgRoomDestroyed   MessageType = "roomDestroyed"   // session ended because a seat disconnected
	MsgLeaderboardData MessageType = "leaderboardData" // answer to getLeaderboard
)
