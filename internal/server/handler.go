package server

import (
	"context"
	"time"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/room"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/logger"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

// Handler turns inbound messages into rules-engine calls. It runs only
// on the dispatch loop. Rejected intents are logged and dropped: no
// mutation, no broadcast, no reply — the client infers nothing changed.
type Handler struct {
	server *Server
}

// NewHandler creates the message handler.
func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

// Handle dispatches one decoded message.
func (h *Handler) Handle(client room.Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgPing:
		h.handlePing(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgRollDice:
		h.handleRollDice(client, msg)
	case protocol.MsgBuyDevCard:
		h.handleBuyDevCard(client, msg)
	case protocol.MsgPlayDevCard:
		h.handlePlayDevCard(client, msg)
	case protocol.MsgVoteRestart:
		h.handleVoteRestart(client, msg)
	case protocol.MsgMoveRobber:
		h.handleMoveRobber(client, msg)
	case protocol.MsgDiscardResource:
		h.handleDiscardResource(client, msg)
	case protocol.MsgBankTrade:
		h.handleBankTrade(client, msg)
	case protocol.MsgBuildSettlement:
		h.handleBuildSettlement(client, msg)
	case protocol.MsgBuildRoad:
		h.handleBuildRoad(client, msg)
	case protocol.MsgPassTurn:
		h.handlePassTurn(client, msg)
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)
	case protocol.MsgDevAddKnight:
		h.handleDevAddKnight(client, msg)
	case protocol.MsgDevAddResources:
		h.handleDevAddResources(client, msg)
	default:
		logger.LogInfo("unknown message type %q from %s", msg.Type, client.GetID())
	}
}

// HandleDisconnect destroys the whole room the client was seated in.
// There is no grace period and no seat resume.
func (h *Handler) HandleDisconnect(client room.Client) {
	h.server.rooms.Leave(client)
	h.server.unregisterClient(client.GetID())
	logger.LogInfo("client %s disconnected", client.GetID())
}

func (h *Handler) handlePing(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

func (h *Handler) handleJoinRoom(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil || payload.RoomID == "" {
		logger.LogInfo("dropping malformed joinRoom from %s", client.GetID())
		return
	}

	client.SetName(payload.PlayerName)
	r, err := h.server.rooms.Join(client, payload.RoomID, payload.PlayerName)
	if err != nil {
		logger.LogInfo("join rejected for %s: %v", client.GetID(), err)
		return
	}
	r.BroadcastState()
}

// resolveRoom maps a room identifier from an intent to a live room. A
// dead reference is dropped silently, like any illegal intent.
func (h *Handler) resolveRoom(client room.Client, roomID string) *room.Room {
	r := h.server.rooms.Get(roomID)
	if r == nil {
		logger.LogInfo("dropping intent from %s: no such room %q", client.GetID(), roomID)
	}
	return r
}

// applyAndBroadcast finalizes an accepted or rejected intent: rejected
// ones are logged and dropped, accepted ones trigger the snapshot
// broadcast and, on a fresh winner, the leaderboard write.
func (h *Handler) applyAndBroadcast(client room.Client, r *room.Room, intent string, hadWinner bool, err error) {
	if err != nil {
		logger.LogInfo("%s rejected for %s: %v", intent, client.GetID(), err)
		return
	}
	if !hadWinner && r.Session.Winner != "" {
		h.recordWin(r)
	}
	r.BroadcastState()
}

// recordWin writes the finished game to the leaderboard off the
// dispatch loop; stats are best-effort and never block intents.
func (h *Handler) recordWin(r *room.Room) {
	lb := h.server.leaderboard
	if lb == nil {
		return
	}
	winner := r.Session.Winner
	names := make([]string, 0, len(r.Session.Players))
	for _, p := range r.Session.Players {
		names = append(names, p.Name)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lb.RecordGameResult(ctx, winner, names); err != nil {
			logger.LogError("leaderboard write failed: %v", err)
		}
	}()
}

func (h *Handler) handleRollDice(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "rollDice", r.Session.Winner != "", r.Session.RollDice(client.GetID()))
}

func (h *Handler) handleBuyDevCard(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}

	hadWinner := r.Session.Winner != ""
	card, err := r.Session.BuyDevCard(client.GetID())
	if err == nil {
		// Only the buyer learns which card was drawn.
		client.SendMessage(protocol.MustNewMessage(protocol.MsgCardBoughtInfo, protocol.CardBoughtPayload{Card: card}))
	}
	h.applyAndBroadcast(client, r, "buyDevCard", hadWinner, err)
}

func (h *Handler) handlePlayDevCard(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayDevCardPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}

	hadWinner := r.Session.Winner != ""
	playErr := r.Session.PlayDevCard(client.GetID(), payload.Type)
	if playErr == nil {
		r.Broadcast(protocol.MustNewMessage(protocol.MsgVisualCardPlay, protocol.VisualCardPlayPayload{
			PlayerName: client.GetName(),
			Type:       payload.Type,
		}))
	}
	h.applyAndBroadcast(client, r, "playDevCard", hadWinner, playErr)
}

func (h *Handler) handleVoteRestart(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}

	restarted, voteErr := r.Session.VoteRestart(client.GetID())
	if voteErr != nil {
		logger.LogInfo("voteRestart rejected for %s: %v", client.GetID(), voteErr)
		return
	}
	if restarted {
		logger.LogInfo("room %s restarted by unanimous vote", r.ID)
	}
	r.BroadcastState()
}

func (h *Handler) handleMoveRobber(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.MoveRobberPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "moveRobber", r.Session.Winner != "",
		r.Session.MoveRobber(client.GetID(), payload.HexID))
}

func (h *Handler) handleDiscardResource(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.DiscardResourcePayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "discardResource", r.Session.Winner != "",
		r.Session.DiscardResource(client.GetID(), payload.Resource))
}

func (h *Handler) handleBankTrade(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.BankTradePayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "bankTrade", r.Session.Winner != "",
		r.Session.BankTrade(client.GetID(), payload.Give, payload.Get))
}

func (h *Handler) handleBuildSettlement(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.BuildSettlementPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "buildSettlement", r.Session.Winner != "",
		r.Session.BuildSettlement(client.GetID(), payload.VertexID, payload.HexIDs, payload.Neighbors))
}

func (h *Handler) handleBuildRoad(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.BuildRoadPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "buildRoad", r.Session.Winner != "",
		r.Session.BuildRoad(client.GetID(), payload.EdgeID, payload.V1, payload.V2))
}

func (h *Handler) handlePassTurn(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "passTurn", r.Session.Winner != "", r.Session.PassTurn(client.GetID()))
}

func (h *Handler) handleGetLeaderboard(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		payload = &protocol.GetLeaderboardPayload{}
	}
	limit := payload.Limit
	if limit <= 0 {
		limit = h.server.config.Game.LeaderboardSize
	}

	lb := h.server.leaderboard
	if lb == nil {
		client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardData, protocol.LeaderboardPayload{}))
		return
	}

	// Read off the dispatch loop; the reply does not depend on any
	// session state.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := lb.Top(ctx, limit)
		if err != nil {
			logger.LogError("leaderboard read failed: %v", err)
			return
		}
		client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardData, protocol.LeaderboardPayload{Entries: entries}))
	}()
}

func (h *Handler) handleDevAddKnight(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "dev_addKnight", r.Session.Winner != "", r.Session.GrantKnight(client.GetID()))
}

func (h *Handler) handleDevAddResources(client room.Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RoomPayload](msg)
	if err != nil {
		return
	}
	r := h.resolveRoom(client, payload.RoomID)
	if r == nil {
		return
	}
	h.applyAndBroadcast(client, r, "dev_addResources", r.Session.Winner != "", r.Session.GrantAllResources(client.GetID()))
}
