package session

import "github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"

// Snapshot is the full-state view broadcast to every seat after each
// accepted mutation. It mirrors the session except for the development
// deck, which is exposed only as a remaining count so its order never
// leaves the server.
type Snapshot struct {
	Players     []*Player              `json:"players"`
	Tiles       []board.Tile           `json:"map"`
	RobberTile  int                    `json:"robberHexId"`
	DeckSize    int                    `json:"devDeckCount"`
	Settlements map[string]*Settlement `json:"settlements"`
	Roads       map[string]*Road       `json:"roads"`

	Phase     Phase    `json:"phase"`
	SubPhase  SubPhase `json:"subPhase"`
	Turn      int      `json:"turn"`
	SetupTurn int      `json:"setupTurn"`

	HasRolled          bool `json:"hasRolled"`
	WaitingForRobber   bool `json:"waitingForRobber"`
	PlayedCardThisTurn bool `json:"playedCardThisTurn"`

	LargestArmyHolder string   `json:"largestArmyHolder,omitempty"`
	LargestArmySize   int      `json:"largestArmySize"`
	Winner            string   `json:"winner,omitempty"`
	RestartVotes      []string `json:"restartVotes"`

	LastDice    [2]int   `json:"lastDice"`
	Instruction string   `json:"instruction"`
	Logs        []string `json:"logs"`
}

// Snapshot builds the broadcast view of the current state.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Players:            s.Players,
		Tiles:              s.Tiles,
		RobberTile:         s.RobberTile,
		DeckSize:           len(s.devDeck),
		Settlements:        s.Settlements,
		Roads:              s.Roads,
		Phase:              s.Phase,
		SubPhase:           s.SubPhase,
		Turn:               s.Turn,
		SetupTurn:          s.SetupTurn,
		HasRolled:          s.HasRolled,
		WaitingForRobber:   s.WaitingForRobber,
		PlayedCardThisTurn: s.PlayedCardThisTurn,
		LargestArmyHolder:  s.LargestArmyHolder,
		LargestArmySize:    s.LargestArmySize,
		Winner:             s.Winner,
		RestartVotes:       s.RestartVotes(),
		LastDice:           s.LastDice,
		Instruction:        s.Instruction,
		Logs:               s.Logs,
	}
}
