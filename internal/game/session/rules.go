package session

import (
	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
)

// The rules engine: one method per intent. Every method validates all of
// its preconditions before the first mutation, so a rejected intent
// leaves the session untouched. Accepted intents finish by recomputing
// the instruction string.

// requireActiveTurn checks the shared preconditions of turn-bound
// intents: game running, no winner, actor seated and holding the turn.
func (s *Session) requireActiveTurn(playerID string) (*Player, error) {
	if !s.started {
		return nil, ErrNotStarted
	}
	if s.Winner != "" {
		return nil, ErrGameOver
	}
	p := s.CurrentPlayer()
	if p == nil || p.ID != playerID {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// RollDice rolls two dice for the current seat. A seven puts every seat
// over seven cards into discard; any other sum produces resources on
// matching tiles, except the robber's.
func (s *Session) RollDice(playerID string) error {
	if _, err := s.requireActiveTurn(playerID); err != nil {
		return err
	}
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if s.HasRolled {
		return ErrAlreadyRolled
	}

	s.LastDice = [2]int{s.rng.Intn(6) + 1, s.rng.Intn(6) + 1}
	s.HasRolled = true
	s.applyRoll(s.LastDice[0] + s.LastDice[1])
	s.updateInstruction()
	return nil
}

// applyRoll resolves a rolled sum: a seven starts the discard/robber
// sequence, anything else produces resources.
func (s *Session) applyRoll(sum int) {
	if sum != 7 {
		s.produceResources(sum)
		return
	}
	anyoneDiscards := false
	for _, p := range s.Players {
		// Strictly more than seven cards forces a discard of half,
		// rounded down. Exactly seven is safe.
		if total := p.Resources.Total(); total > 7 {
			p.DiscardNeeded = total / 2
			anyoneDiscards = true
		}
	}
	if !anyoneDiscards {
		s.WaitingForRobber = true
	}
}

// produceResources grants yields for every tile matching the rolled sum.
// The robber's tile never produces. A city yields two units.
func (s *Session) produceResources(sum int) {
	for _, tile := range s.Tiles {
		if tile.Number != sum || tile.ID == s.RobberTile {
			continue
		}
		for _, st := range s.Settlements {
			if !containsHex(st.HexIDs, tile.ID) {
				continue
			}
			owner := s.PlayerByID(st.PlayerID)
			if owner == nil {
				continue
			}
			yield := 1
			if st.IsCity {
				yield = 2
			}
			owner.Resources.Add(tile.Type, yield)
		}
	}
}

func containsHex(hexIDs []int, id int) bool {
	for _, h := range hexIDs {
		if h == id {
			return true
		}
	}
	return false
}

// BuildSettlement is the merged place-or-upgrade entry point: if the
// actor already owns a settlement on the vertex it becomes a city,
// otherwise a new settlement is placed. Adjacency is judged from the
// caller-supplied hex and neighbor-vertex lists; the engine never
// computes board geometry itself.
func (s *Session) BuildSettlement(playerID, vertexID string, hexIDs []int, neighbors []string) error {
	player, err := s.requireActiveTurn(playerID)
	if err != nil {
		return err
	}

	if existing, ok := s.Settlements[vertexID]; ok {
		return s.upgradeToCity(player, existing)
	}

	for _, n := range neighbors {
		if _, occupied := s.Settlements[n]; occupied {
			return ErrVertexTooClose
		}
	}

	isSetup := s.Phase == PhaseSetup1 || s.Phase == PhaseSetup2
	if !isSetup {
		if !s.hasRoadAt(player.ID, vertexID) {
			return ErrNoRoadAtVertex
		}
		if !player.Resources.Covers(costSettlement) {
			return ErrInsufficientFunds
		}
		player.Resources.Pay(costSettlement)
	} else if s.Phase == PhaseSetup2 {
		// The second setup settlement yields one unit per adjacent
		// producing tile, compensating for the rounds it never rolled in.
		for _, hexID := range hexIDs {
			if hexID < 0 || hexID >= len(s.Tiles) {
				continue
			}
			if tile := s.Tiles[hexID]; tile.Type != board.Desert {
				player.Resources.Add(tile.Type, 1)
			}
		}
	}

	s.Settlements[vertexID] = &Settlement{
		PlayerID: player.ID,
		Color:    player.Color,
		HexIDs:   hexIDs,
	}
	player.Score++
	s.addLog("🏠 %s postavil vesnici.", player.Name)
	s.checkWinner()
	s.LastBuiltVertex = vertexID
	s.SubPhase = SubPhaseRoad
	s.updateInstruction()
	return nil
}

// upgradeToCity turns an own settlement into a city for 3 ore + 2 wheat.
func (s *Session) upgradeToCity(player *Player, st *Settlement) error {
	if st.IsCity {
		return ErrAlreadyCity
	}
	if st.PlayerID != player.ID {
		return ErrNotYourSettlement
	}
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if !player.Resources.Covers(costCity) {
		return ErrInsufficientFunds
	}

	player.Resources.Pay(costCity)
	st.IsCity = true
	player.Score++
	s.addLog("🏰 %s povýšil vesnici na město.", player.Name)
	s.checkWinner()
	s.updateInstruction()
	return nil
}

// hasRoadAt reports whether the player owns a road touching the vertex.
func (s *Session) hasRoadAt(playerID, vertexID string) bool {
	for _, r := range s.Roads {
		if r.PlayerID == playerID && (r.V1 == vertexID || r.V2 == vertexID) {
			return true
		}
	}
	return false
}

// BuildRoad places a road on a free edge. During setup it must attach to
// the settlement just placed and its completion advances the setup
// pointer; in play it must connect to the actor's network and costs
// 1 wood + 1 brick.
func (s *Session) BuildRoad(playerID, edgeID, v1, v2 string) error {
	player, err := s.requireActiveTurn(playerID)
	if err != nil {
		return err
	}
	if _, occupied := s.Roads[edgeID]; occupied {
		return ErrEdgeOccupied
	}

	isSetup := s.Phase == PhaseSetup1 || s.Phase == PhaseSetup2
	if isSetup {
		if s.LastBuiltVertex == "" || (v1 != s.LastBuiltVertex && v2 != s.LastBuiltVertex) {
			return ErrRoadDetached
		}
	} else {
		if !s.connectsToNetwork(player.ID, v1, v2) {
			return ErrRoadDetached
		}
		if !player.Resources.Covers(costRoad) {
			return ErrInsufficientFunds
		}
		player.Resources.Pay(costRoad)
	}

	s.Roads[edgeID] = &Road{
		PlayerID: player.ID,
		Color:    player.Color,
		V1:       v1,
		V2:       v2,
	}
	s.addLog("🛤️ %s postavil cestu.", player.Name)

	if isSetup {
		s.advanceSetup()
	}
	s.updateInstruction()
	return nil
}

// connectsToNetwork reports whether either endpoint touches one of the
// player's settlements or roads.
func (s *Session) connectsToNetwork(playerID, v1, v2 string) bool {
	if st, ok := s.Settlements[v1]; ok && st.PlayerID == playerID {
		return true
	}
	if st, ok := s.Settlements[v2]; ok && st.PlayerID == playerID {
		return true
	}
	for _, r := range s.Roads {
		if r.PlayerID != playerID {
			continue
		}
		if r.V1 == v1 || r.V1 == v2 || r.V2 == v1 || r.V2 == v2 {
			return true
		}
	}
	return false
}

// advanceSetup moves the setup pointer after a road: forward in SETUP_1,
// backward in SETUP_2. The turn pointer follows it, and the last seat of
// SETUP_1 places again first in SETUP_2.
func (s *Session) advanceSetup() {
	if s.Phase == PhaseSetup1 {
		if s.SetupTurn < len(s.Players)-1 {
			s.SetupTurn++
		} else {
			s.Phase = PhaseSetup2
		}
	} else {
		if s.SetupTurn > 0 {
			s.SetupTurn--
		} else {
			s.Phase = PhasePlaying
		}
	}
	s.Turn = s.SetupTurn
	s.SubPhase = SubPhaseSettlement
}

// BuyDevCard draws the top card of the deck for 1 ore + 1 wheat +
// 1 sheep. A victory-point card scores immediately. The drawn card is
// returned so the transport can tell the buyer privately.
func (s *Session) BuyDevCard(playerID string) (board.DevCard, error) {
	player, err := s.requireActiveTurn(playerID)
	if err != nil {
		return "", err
	}
	if !s.HasRolled {
		return "", ErrRollFirst
	}
	if len(s.devDeck) == 0 {
		return "", ErrDeckEmpty
	}
	if !player.Resources.Covers(costDevCard) {
		return "", ErrInsufficientFunds
	}

	player.Resources.Pay(costDevCard)
	card := s.devDeck[len(s.devDeck)-1]
	s.devDeck = s.devDeck[:len(s.devDeck)-1]
	player.DevCards.Add(card, 1)
	if card == board.Point {
		player.Score++
		s.checkWinner()
	}
	s.addLog("🃏 %s koupil kartu.", player.Name)
	s.updateInstruction()
	return card, nil
}

// PlayDevCard plays one held knight or progress card, at most one card
// per turn. Victory-point cards score on purchase and are never played.
func (s *Session) PlayDevCard(playerID string, card board.DevCard) error {
	player, err := s.requireActiveTurn(playerID)
	if err != nil {
		return err
	}
	if card != board.Knight && card != board.Progress {
		return ErrCardNotPlayable
	}
	if player.DevCards.Get(card) <= 0 {
		return ErrCardNotHeld
	}
	if s.PlayedCardThisTurn {
		return ErrCardAlreadyPlayed
	}

	player.DevCards.Add(card, -1)
	s.PlayedCardThisTurn = true

	switch card {
	case board.Knight:
		player.KnightsPlayed++
		s.WaitingForRobber = true
		s.addLog("⚔️ %s zahrál rytíře.", player.Name)
		s.claimLargestArmy(player)
	case board.Progress:
		// Two units, each drawn independently; duplicates allowed.
		player.Resources.Add(board.RandomResource(s.rng), 1)
		player.Resources.Add(board.RandomResource(s.rng), 1)
		s.addLog("📜 %s zahrál kartu pokroku.", player.Name)
	}

	s.checkWinner()
	s.updateInstruction()
	return nil
}

// claimLargestArmy transfers the two-point bonus when the player's knight
// count exceeds the current threshold, then raises the threshold to that
// count.
func (s *Session) claimLargestArmy(player *Player) {
	if player.KnightsPlayed <= s.LargestArmySize {
		return
	}
	if s.LargestArmyHolder != player.ID {
		if prev := s.PlayerByID(s.LargestArmyHolder); prev != nil {
			prev.Score -= 2
		}
		s.LargestArmyHolder = player.ID
		player.Score += 2
		s.addLog("🎖️ %s získal Největší armádu!", player.Name)
	}
	s.LargestArmySize = player.KnightsPlayed
}

// MoveRobber relocates the robber while a placement is pending.
func (s *Session) MoveRobber(playerID string, tileID int) error {
	if _, err := s.requireActiveTurn(playerID); err != nil {
		return err
	}
	if !s.WaitingForRobber {
		return ErrNoRobberPending
	}
	if tileID < 0 || tileID >= len(s.Tiles) {
		return ErrInvalidTile
	}

	s.RobberTile = tileID
	s.WaitingForRobber = false
	s.updateInstruction()
	return nil
}

// DiscardResource drops one unit toward the actor's discard debt. Unlike
// turn-bound intents any indebted seat may discard at any time; once all
// debts hit zero the roller places the robber.
func (s *Session) DiscardResource(playerID string, res board.Resource) error {
	player := s.PlayerByID(playerID)
	if player == nil {
		return ErrNotSeated
	}
	if player.DiscardNeeded <= 0 {
		return ErrNothingToDiscard
	}
	if !res.Valid() {
		return ErrInvalidResource
	}
	if player.Resources.Get(res) <= 0 {
		return ErrInsufficientFunds
	}

	player.Resources.Add(res, -1)
	player.DiscardNeeded--
	if !s.discardsPending() {
		s.WaitingForRobber = true
	}
	s.updateInstruction()
	return nil
}

// BankTrade exchanges four of one kind for one of another.
func (s *Session) BankTrade(playerID string, give, get board.Resource) error {
	player, err := s.requireActiveTurn(playerID)
	if err != nil {
		return err
	}
	if !give.Valid() || !get.Valid() {
		return ErrInvalidResource
	}
	if player.Resources.Get(give) < 4 {
		return ErrInsufficientFunds
	}

	player.Resources.Add(give, -4)
	player.Resources.Add(get, 1)
	s.addLog("⚖️ %s měnil s bankou.", player.Name)
	s.updateInstruction()
	return nil
}

// PassTurn hands the turn to the next seat. Blocked while the robber or
// any discard is pending.
func (s *Session) PassTurn(playerID string) error {
	if _, err := s.requireActiveTurn(playerID); err != nil {
		return err
	}
	if !s.HasRolled {
		return ErrRollFirst
	}
	if s.WaitingForRobber {
		return ErrRobberPending
	}
	if s.discardsPending() {
		return ErrDiscardPending
	}

	s.Turn = (s.Turn + 1) % len(s.Players)
	s.HasRolled = false
	s.SubPhase = SubPhaseSettlement
	s.PlayedCardThisTurn = false
	s.updateInstruction()
	return nil
}

// VoteRestart records one restart vote per seat after a win. When every
// current seat has voted the session reinitializes in place; the return
// value reports that a restart happened.
func (s *Session) VoteRestart(playerID string) (restarted bool, err error) {
	if s.Winner == "" {
		return false, ErrNoWinnerYet
	}
	if s.PlayerByID(playerID) == nil {
		return false, ErrNotSeated
	}

	if s.restartVotes == nil {
		s.restartVotes = make(map[string]bool)
	}
	s.restartVotes[playerID] = true
	if len(s.restartVotes) == len(s.Players) {
		s.Init()
		return true, nil
	}
	return false, nil
}

// GrantKnight is a debug intent: adds a knight card, bypassing all rules.
func (s *Session) GrantKnight(playerID string) error {
	player := s.PlayerByID(playerID)
	if player == nil {
		return ErrNotSeated
	}
	player.DevCards.Knight++
	return nil
}

// GrantAllResources is a debug intent: adds five of each resource,
// bypassing all rules.
func (s *Session) GrantAllResources(playerID string) error {
	player := s.PlayerByID(playerID)
	if player == nil {
		return ErrNotSeated
	}
	for _, r := range board.Resources {
		player.Resources.Add(r, 5)
	}
	return nil
}
