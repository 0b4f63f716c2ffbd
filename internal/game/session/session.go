package session

import (
	"fmt"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
)

// MaxSeats is the hard seat limit, bounded by the color palette.
const MaxSeats = len(playerColors)

// maxLogEntries caps the rolling event log.
const maxLogEntries = 6

// AddPlayer seats a new player. The game auto-initializes once two seats
// are filled; later joiners get a seat in the running game with empty
// holdings, exactly until the next restart deals them in properly.
func (s *Session) AddPlayer(id, name string) error {
	if s.PlayerByID(id) != nil {
		return ErrAlreadySeated
	}
	if len(s.Players) >= MaxSeats {
		return ErrSeatsFull
	}
	if name == "" {
		name = fmt.Sprintf("Hráč %d", len(s.Players)+1)
	}
	s.Players = append(s.Players, &Player{
		ID:    id,
		Name:  name,
		Color: playerColors[len(s.Players)],
	})
	if len(s.Players) >= 2 && !s.started {
		s.Init()
	}
	s.updateInstruction()
	return nil
}

// Init generates a fresh board and deck and resets every seat to the
// start of the setup phase. It is called on the second join and again
// when a unanimous restart vote passes.
func (s *Session) Init() {
	s.Tiles, s.RobberTile, s.devDeck = board.Generate(s.rng)

	s.LargestArmyHolder = ""
	s.LargestArmySize = 2
	s.Winner = ""
	s.restartVotes = make(map[string]bool)
	s.WaitingForRobber = false
	s.PlayedCardThisTurn = false
	s.HasRolled = false

	for i, p := range s.Players {
		p.Resources = ResourceSet{}
		p.DevCards = DevCardSet{}
		p.KnightsPlayed = 0
		p.Color = playerColors[i]
		p.Score = 0
		p.DiscardNeeded = 0
	}

	s.Phase = PhaseSetup1
	s.SubPhase = SubPhaseSettlement
	s.SetupTurn = 0
	s.Turn = 0
	s.Settlements = make(map[string]*Settlement)
	s.Roads = make(map[string]*Road)
	s.LastDice = [2]int{1, 1}
	s.LastBuiltVertex = ""
	s.Logs = []string{"Hra začala!"}
	s.started = true
	s.updateInstruction()
}

// addLog prepends a narrated event, keeping the newest six entries. The
// log is display-only; the rules never read it.
func (s *Session) addLog(format string, args ...any) {
	s.Logs = append([]string{fmt.Sprintf(format, args...)}, s.Logs...)
	if len(s.Logs) > maxLogEntries {
		s.Logs = s.Logs[:maxLogEntries]
	}
}

// checkWinner declares the first seat (in join order) whose score reached
// ten. Once set, the winner stands until a full restart vote.
func (s *Session) checkWinner() {
	if s.Winner != "" {
		return
	}
	for _, p := range s.Players {
		if p.Score >= 10 {
			s.Winner = p.Name
			s.addLog("🏆 %s vyhrál hru!", p.Name)
			return
		}
	}
}

// discardsPending reports whether any seat still owes discards.
func (s *Session) discardsPending() bool {
	for _, p := range s.Players {
		if p.DiscardNeeded > 0 {
			return true
		}
	}
	return false
}
