package session

import "errors"

// Rejection reasons returned by the rules engine. The transport layer
// drops rejected intents silently and only logs the reason; typed errors
// keep that decision out of the engine.
var (
	ErrNotSeated         = errors.New("session: player is not seated")
	ErrSeatsFull         = errors.New("session: all seats are taken")
	ErrAlreadySeated     = errors.New("session: player already holds a seat")
	ErrNotStarted        = errors.New("session: game has not started")
	ErrGameOver          = errors.New("session: game already has a winner")
	ErrNoWinnerYet       = errors.New("session: game has no winner yet")
	ErrNotYourTurn       = errors.New("session: not this player's turn")
	ErrWrongPhase        = errors.New("session: intent not valid in this phase")
	ErrAlreadyRolled     = errors.New("session: dice already rolled this turn")
	ErrRollFirst         = errors.New("session: dice must be rolled first")
	ErrRobberPending     = errors.New("session: robber placement pending")
	ErrNoRobberPending   = errors.New("session: no robber placement pending")
	ErrDiscardPending    = errors.New("session: discards still pending")
	ErrNothingToDiscard  = errors.New("session: no discard required")
	ErrInsufficientFunds = errors.New("session: not enough resources")
	ErrDeckEmpty         = errors.New("session: development deck is empty")
	ErrCardNotHeld       = errors.New("session: development card not held")
	ErrCardNotPlayable   = errors.New("session: card kind cannot be played")
	ErrCardAlreadyPlayed = errors.New("session: already played a card this turn")
	ErrVertexTooClose    = errors.New("session: adjacent vertex is occupied")
	ErrNotYourSettlement = errors.New("session: settlement owned by another player")
	ErrAlreadyCity       = errors.New("session: settlement is already a city")
	ErrEdgeOccupied      = errors.New("session: edge already occupied")
	ErrRoadDetached      = errors.New("session: road does not connect to own network")
	ErrNoRoadAtVertex    = errors.New("session: no own road touches this vertex")
	ErrInvalidTile       = errors.New("session: tile id out of range")
	ErrInvalidResource   = errors.New("session: unknown resource kind")
)
