// Package session holds the state of one game and the rules engine that
// validates and applies player intents against it.
package session

import (
	"math/rand"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
)

// Phase is the top-level stage of a game.
type Phase string

const (
	PhaseSetup1  Phase = "SETUP_1" // first placement round, seat order forward
	PhaseSetup2  Phase = "SETUP_2" // second placement round, seat order reversed
	PhasePlaying Phase = "PLAYING"
)

// SubPhase alternates during setup: each seat places a settlement, then
// the road attached to it.
type SubPhase string

const (
	SubPhaseSettlement SubPhase = "SETTLEMENT"
	SubPhaseRoad       SubPhase = "ROAD"
)

// ResourceSet is a fixed-shape holding of the five resources. Using a
// struct instead of a map makes an unknown resource kind unrepresentable.
type ResourceSet struct {
	Wood  int `json:"WOOD"`
	Brick int `json:"BRICK"`
	Sheep int `json:"SHEEP"`
	Wheat int `json:"WHEAT"`
	Ore   int `json:"ORE"`
}

// Get returns the held count of r, 0 for non-producing kinds.
func (s *ResourceSet) Get(r board.Resource) int {
	switch r {
	case board.Wood:
		return s.Wood
	case board.Brick:
		return s.Brick
	case board.Sheep:
		return s.Sheep
	case board.Wheat:
		return s.Wheat
	case board.Ore:
		return s.Ore
	}
	return 0
}

// Add adds n (possibly negative) units of r.
func (s *ResourceSet) Add(r board.Resource, n int) {
	switch r {
	case board.Wood:
		s.Wood += n
	case board.Brick:
		s.Brick += n
	case board.Sheep:
		s.Sheep += n
	case board.Wheat:
		s.Wheat += n
	case board.Ore:
		s.Ore += n
	}
}

// Total returns the number of resource units held.
func (s *ResourceSet) Total() int {
	return s.Wood + s.Brick + s.Sheep + s.Wheat + s.Ore
}

// Covers reports whether every component of cost is available.
func (s *ResourceSet) Covers(cost ResourceSet) bool {
	return s.Wood >= cost.Wood &&
		s.Brick >= cost.Brick &&
		s.Sheep >= cost.Sheep &&
		s.Wheat >= cost.Wheat &&
		s.Ore >= cost.Ore
}

// Pay removes cost from the set. Callers must check Covers first.
func (s *ResourceSet) Pay(cost ResourceSet) {
	s.Wood -= cost.Wood
	s.Brick -= cost.Brick
	s.Sheep -= cost.Sheep
	s.Wheat -= cost.Wheat
	s.Ore -= cost.Ore
}

// DevCardSet is a fixed-shape holding of development cards.
type DevCardSet struct {
	Knight   int `json:"KNIGHT"`
	Point    int `json:"POINT"`
	Progress int `json:"PROGRESS"`
}

// Get returns the held count of card.
func (d *DevCardSet) Get(card board.DevCard) int {
	switch card {
	case board.Knight:
		return d.Knight
	case board.Point:
		return d.Point
	case board.Progress:
		return d.Progress
	}
	return 0
}

// Add adds n (possibly negative) cards of the given kind.
func (d *DevCardSet) Add(card board.DevCard, n int) {
	switch card {
	case board.Knight:
		d.Knight += n
	case board.Point:
		d.Point += n
	case board.Progress:
		d.Progress += n
	}
}

// Build costs.
var (
	costRoad       = ResourceSet{Wood: 1, Brick: 1}
	costSettlement = ResourceSet{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}
	costCity       = ResourceSet{Ore: 3, Wheat: 2}
	costDevCard    = ResourceSet{Ore: 1, Wheat: 1, Sheep: 1}
)

// playerColors is the fixed palette, assigned by join order.
var playerColors = [4]string{"#ef4444", "#3b82f6", "#10b981", "#f8fafc"}

// Player is one seat of the game.
type Player struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Color         string      `json:"color"`
	Resources     ResourceSet `json:"resources"`
	DevCards      DevCardSet  `json:"devCards"`
	KnightsPlayed int         `json:"knightsPlayed"`
	Score         int         `json:"score"`
	DiscardNeeded int         `json:"discardNeeded"`
}

// Settlement occupies a vertex of the build graph. IsCity marks the
// upgraded form.
type Settlement struct {
	PlayerID string `json:"playerId"`
	Color    string `json:"color"`
	HexIDs   []int  `json:"hexIds"`
	IsCity   bool   `json:"isCity"`
}

// Road occupies an edge of the build graph between two vertices.
type Road struct {
	PlayerID string `json:"playerId"`
	Color    string `json:"color"`
	V1       string `json:"v1"`
	V2       string `json:"v2"`
}

// Session is the full state of one game room. It is owned by the server's
// dispatch loop; intents are applied one at a time, so no locking happens
// here.
type Session struct {
	rng *rand.Rand

	Players []*Player

	Tiles      []board.Tile
	RobberTile int
	devDeck    []board.DevCard

	Settlements map[string]*Settlement
	Roads       map[string]*Road

	Phase     Phase
	SubPhase  SubPhase
	Turn      int
	SetupTurn int

	HasRolled          bool
	WaitingForRobber   bool
	PlayedCardThisTurn bool

	LargestArmyHolder string // player ID, empty when unclaimed
	LargestArmySize   int    // threshold a contender must exceed

	Winner          string // winner's display name, empty while playing
	restartVotes    map[string]bool
	LastDice        [2]int
	LastBuiltVertex string

	Instruction string
	Logs        []string

	started bool // board generated once two seats were present
}

// New creates an empty session. The rand source drives board generation,
// dice and card draws; inject a seeded one for deterministic tests.
func New(rng *rand.Rand) *Session {
	return &Session{rng: rng}
}

// Started reports whether the board has been generated.
func (s *Session) Started() bool { return s.started }

// DeckSize returns the number of undrawn development cards.
func (s *Session) DeckSize() int { return len(s.devDeck) }

// CurrentPlayer returns the seat whose turn it is, or nil before init.
func (s *Session) CurrentPlayer() *Player {
	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return nil
	}
	return s.Players[s.Turn]
}

// PlayerByID finds a seated player, or nil.
func (s *Session) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RestartVotes returns the IDs of seats that voted for a restart.
func (s *Session) RestartVotes() []string {
	votes := make([]string, 0, len(s.restartVotes))
	for _, p := range s.Players {
		if s.restartVotes[p.ID] {
			votes = append(votes, p.ID)
		}
	}
	return votes
}
