package session

import "strings"

// updateInstruction derives the "what must happen next" display string
// from the current state. Priority: discards in progress, then robber
// placement, then setup placement, then roll, then free turn. Display
// only, never read back by the rules.
func (s *Session) updateInstruction() {
	player := s.CurrentPlayer()
	if player == nil {
		return
	}
	name := strings.ToUpper(player.Name)

	switch {
	case s.discardsPending():
		s.Instruction = "ČEKÁ SE NA ODEVZDÁNÍ KARET..."
	case s.WaitingForRobber:
		s.Instruction = name + ": PŘEMÍSTI ZLODĚJE"
	case s.Phase == PhaseSetup1 || s.Phase == PhaseSetup2:
		if s.SubPhase == SubPhaseSettlement {
			s.Instruction = name + ": POSTAV VESNICI"
		} else {
			s.Instruction = name + ": POSTAV CESTU"
		}
	case !s.HasRolled:
		s.Instruction = name + ": HOĎ KOSTKOU!"
	default:
		s.Instruction = name + ": TVŮJ TAH"
	}
}
