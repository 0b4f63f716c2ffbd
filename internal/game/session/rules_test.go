package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
)

// recomputeScore derives a seat's score from first principles; every
// state a test reaches must satisfy it.
func recomputeScore(s *Session, p *Player) int {
	score := 0
	for _, st := range s.Settlements {
		if st.PlayerID != p.ID {
			continue
		}
		if st.IsCity {
			score += 2
		} else {
			score++
		}
	}
	if s.LargestArmyHolder == p.ID {
		score += 2
	}
	return score + p.DevCards.Point
}

func assertScoreInvariant(t *testing.T, s *Session) {
	t.Helper()
	for _, p := range s.Players {
		assert.Equal(t, recomputeScore(s, p), p.Score, "score invariant for %s", p.Name)
	}
}

// --- setup phase ---

func TestSetupAlternationTwoPlayers(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")

	// Seat 0: settlement then the mandatory attached road.
	require.NoError(t, s.BuildSettlement("p1", "v1", []int{0, 1}, []string{"n1"}))
	assert.Equal(t, 1, s.Players[0].Score)
	assert.Equal(t, SubPhaseRoad, s.SubPhase)
	assert.Equal(t, "v1", s.LastBuiltVertex)

	// A road not touching the fresh settlement is rejected.
	assert.ErrorIs(t, s.BuildRoad("p1", "e9", "x1", "x2"), ErrRoadDetached)

	require.NoError(t, s.BuildRoad("p1", "e1", "v1", "v2"))
	assert.Equal(t, PhaseSetup1, s.Phase)
	assert.Equal(t, 1, s.SetupTurn, "pointer advances after the road")
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, SubPhaseSettlement, s.SubPhase)

	// Seat 1 finishes the forward round; the same seat opens SETUP_2.
	require.NoError(t, s.BuildSettlement("p2", "v3", nil, nil))
	require.NoError(t, s.BuildRoad("p2", "e2", "v3", "v4"))
	assert.Equal(t, PhaseSetup2, s.Phase)
	assert.Equal(t, 1, s.SetupTurn)
	assert.Equal(t, 1, s.Turn)

	require.NoError(t, s.BuildSettlement("p2", "v5", nil, nil))
	require.NoError(t, s.BuildRoad("p2", "e3", "v5", "v6"))
	assert.Equal(t, PhaseSetup2, s.Phase)
	assert.Equal(t, 0, s.SetupTurn, "pointer retreats in SETUP_2")

	// Seat 0 closes setup; the phase flips to PLAYING.
	require.NoError(t, s.BuildSettlement("p1", "v7", nil, nil))
	require.NoError(t, s.BuildRoad("p1", "e4", "v7", "v8"))
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, 0, s.Turn)

	// Setup builds are free.
	for _, p := range s.Players[:1] {
		assert.Zero(t, p.Resources.Wood)
		assert.Zero(t, p.Resources.Brick)
	}
	assertScoreInvariant(t, s)
}

func TestSetupSecondRoundGrantsResources(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	s.Phase = PhaseSetup2
	s.SubPhase = SubPhaseSettlement
	s.Turn = 1
	s.SetupTurn = 1
	s.Tiles[0] = board.Tile{ID: 0, Type: board.Wood, Number: 6}
	s.Tiles[1] = board.Tile{ID: 1, Type: board.Desert}
	s.Tiles[2] = board.Tile{ID: 2, Type: board.Ore, Number: 9}

	require.NoError(t, s.BuildSettlement("p2", "v1", []int{0, 1, 2}, nil))

	p := s.Players[1]
	assert.Equal(t, 1, p.Resources.Wood)
	assert.Equal(t, 1, p.Resources.Ore)
	assert.Zero(t, p.Resources.Brick, "desert grants nothing")
}

func TestSetupFirstRoundGrantsNothing(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	require.NoError(t, s.BuildSettlement("p1", "v1", []int{0, 1, 2}, nil))
	assert.Zero(t, s.Players[0].Resources.Total())
}

func TestSetupWrongSeatRejected(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	assert.ErrorIs(t, s.BuildSettlement("p2", "v1", nil, nil), ErrNotYourTurn)
}

// --- dice and production ---

func TestRollDicePreconditions(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")

	assert.ErrorIs(t, s.RollDice("p1"), ErrWrongPhase, "no rolling during setup")

	enterPlaying(s)
	assert.ErrorIs(t, s.RollDice("p2"), ErrNotYourTurn)

	require.NoError(t, s.RollDice("p1"))
	assert.True(t, s.HasRolled)
	for _, d := range s.LastDice {
		assert.GreaterOrEqual(t, d, 1)
		assert.LessOrEqual(t, d, 6)
	}

	assert.ErrorIs(t, s.RollDice("p1"), ErrAlreadyRolled)

	s.Winner = "Anna"
	s.HasRolled = false
	assert.ErrorIs(t, s.RollDice("p1"), ErrGameOver)
}

func TestApplyRollSevenDiscards(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda", "Cyril")
	enterPlaying(s)
	s.Players[0].Resources = ResourceSet{Wood: 5, Brick: 3} // 8 cards
	s.Players[1].Resources = ResourceSet{Sheep: 7}          // exactly 7 is safe
	s.Players[2].Resources = ResourceSet{Ore: 9}

	s.applyRoll(7)

	assert.Equal(t, 4, s.Players[0].DiscardNeeded)
	assert.Zero(t, s.Players[1].DiscardNeeded, "threshold is strictly greater than seven")
	assert.Equal(t, 4, s.Players[2].DiscardNeeded)
	assert.False(t, s.WaitingForRobber, "robber waits for all discards")
}

func TestApplyRollSevenNobodyDiscards(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].Resources = ResourceSet{Wood: 7}

	s.applyRoll(7)

	assert.Zero(t, s.Players[0].DiscardNeeded)
	assert.True(t, s.WaitingForRobber)
}

func TestProduction(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Tiles[0] = board.Tile{ID: 0, Type: board.Wood, Number: 6}
	s.Tiles[1] = board.Tile{ID: 1, Type: board.Brick, Number: 6}
	s.Tiles[2] = board.Tile{ID: 2, Type: board.Ore, Number: 9}
	s.RobberTile = 1

	s.Settlements["v1"] = &Settlement{PlayerID: "p1", HexIDs: []int{0, 1}}
	s.Settlements["v2"] = &Settlement{PlayerID: "p2", HexIDs: []int{0}, IsCity: true}

	s.applyRoll(6)

	assert.Equal(t, 1, s.Players[0].Resources.Wood, "settlement yields one")
	assert.Zero(t, s.Players[0].Resources.Brick, "robbered tile never produces")
	assert.Equal(t, 2, s.Players[1].Resources.Wood, "city yields two")

	s.applyRoll(9)
	assert.Zero(t, s.Players[0].Resources.Ore, "no building on the tile")
	assert.Equal(t, 1, s.Players[0].Resources.Total())
	assert.Equal(t, 2, s.Players[1].Resources.Total())
}

// --- discard and robber ---

func TestDiscardFlow(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].Resources = ResourceSet{Wood: 6, Brick: 2}
	s.Players[1].Resources = ResourceSet{Sheep: 9}
	s.applyRoll(7)
	require.Equal(t, 4, s.Players[0].DiscardNeeded)
	require.Equal(t, 4, s.Players[1].DiscardNeeded)

	assert.ErrorIs(t, s.DiscardResource("p1", board.Ore), ErrInsufficientFunds)
	assert.ErrorIs(t, s.DiscardResource("p1", "GOLD"), ErrInvalidResource)
	assert.ErrorIs(t, s.DiscardResource("zzz", board.Wood), ErrNotSeated)

	// Any indebted seat may discard, not only the roller.
	for i := 0; i < 4; i++ {
		require.NoError(t, s.DiscardResource("p2", board.Sheep))
	}
	assert.Zero(t, s.Players[1].DiscardNeeded)
	assert.ErrorIs(t, s.DiscardResource("p2", board.Sheep), ErrNothingToDiscard)
	assert.False(t, s.WaitingForRobber, "seat 0 still owes")

	for i := 0; i < 4; i++ {
		require.NoError(t, s.DiscardResource("p1", board.Wood))
	}
	assert.True(t, s.WaitingForRobber, "all debts settled")
	assert.Equal(t, ResourceSet{Wood: 2, Brick: 2}, s.Players[0].Resources)
}

func TestMoveRobber(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)

	assert.ErrorIs(t, s.MoveRobber("p1", 3), ErrNoRobberPending)

	s.WaitingForRobber = true
	assert.ErrorIs(t, s.MoveRobber("p2", 3), ErrNotYourTurn)
	assert.ErrorIs(t, s.MoveRobber("p1", 99), ErrInvalidTile)

	require.NoError(t, s.MoveRobber("p1", 3))
	assert.Equal(t, 3, s.RobberTile)
	assert.False(t, s.WaitingForRobber)
}

// --- trade ---

func TestBankTrade(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].Resources = ResourceSet{Wood: 3}

	assert.ErrorIs(t, s.BankTrade("p1", board.Wood, board.Ore), ErrInsufficientFunds)
	assert.Equal(t, ResourceSet{Wood: 3}, s.Players[0].Resources, "rejected trade mutates nothing")

	s.Players[0].Resources.Wood = 4
	assert.ErrorIs(t, s.BankTrade("p1", "DESERT", board.Ore), ErrInvalidResource)
	require.NoError(t, s.BankTrade("p1", board.Wood, board.Ore))
	assert.Equal(t, ResourceSet{Ore: 1}, s.Players[0].Resources)
}

// --- development cards ---

func TestBuyDevCard(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].Resources = ResourceSet{Ore: 1, Wheat: 1, Sheep: 1}

	_, err := s.BuyDevCard("p1")
	assert.ErrorIs(t, err, ErrRollFirst)

	s.HasRolled = true
	s.devDeck = []board.DevCard{board.Knight}

	card, err := s.BuyDevCard("p1")
	require.NoError(t, err)
	assert.Equal(t, board.Knight, card)
	assert.Equal(t, 1, s.Players[0].DevCards.Knight)
	assert.Zero(t, s.Players[0].Resources.Total(), "cost consumed")
	assert.Zero(t, s.DeckSize())

	s.Players[0].Resources = ResourceSet{Ore: 1, Wheat: 1, Sheep: 1}
	_, err = s.BuyDevCard("p1")
	assert.ErrorIs(t, err, ErrDeckEmpty)
}

func TestBuyPointCardScoresImmediately(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.HasRolled = true
	s.Players[0].Resources = ResourceSet{Ore: 1, Wheat: 1, Sheep: 1}
	s.devDeck = []board.DevCard{board.Point}

	card, err := s.BuyDevCard("p1")
	require.NoError(t, err)
	assert.Equal(t, board.Point, card)
	assert.Equal(t, 1, s.Players[0].Score)
	assertScoreInvariant(t, s)
}

func TestPlayKnight(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].DevCards.Knight = 2

	require.NoError(t, s.PlayDevCard("p1", board.Knight))
	assert.Equal(t, 1, s.Players[0].KnightsPlayed)
	assert.True(t, s.WaitingForRobber)
	assert.Equal(t, 1, s.Players[0].DevCards.Knight)

	assert.ErrorIs(t, s.PlayDevCard("p1", board.Knight), ErrCardAlreadyPlayed,
		"one card per turn")
}

func TestPlayProgressGrantsTwo(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].DevCards.Progress = 1

	require.NoError(t, s.PlayDevCard("p1", board.Progress))
	assert.Equal(t, 2, s.Players[0].Resources.Total())
	assert.Zero(t, s.Players[0].DevCards.Progress)
}

func TestPlayDevCardRejections(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)

	assert.ErrorIs(t, s.PlayDevCard("p1", board.Knight), ErrCardNotHeld)

	s.Players[0].DevCards.Point = 1
	assert.ErrorIs(t, s.PlayDevCard("p1", board.Point), ErrCardNotPlayable,
		"victory points score on purchase, they are never played")

	s.Players[1].DevCards.Knight = 1
	assert.ErrorIs(t, s.PlayDevCard("p2", board.Knight), ErrNotYourTurn)
}

func TestLargestArmyTransfer(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].DevCards.Knight = 3
	s.Players[1].DevCards.Knight = 4

	playKnight := func(id string) {
		s.PlayedCardThisTurn = false
		s.WaitingForRobber = false
		require.NoError(t, s.PlayDevCard(id, board.Knight))
	}

	// Three knights beat the starting threshold of two.
	playKnight("p1")
	playKnight("p1")
	assert.Empty(t, s.LargestArmyHolder)
	assert.Zero(t, s.Players[0].Score)

	playKnight("p1")
	assert.Equal(t, "p1", s.LargestArmyHolder)
	assert.Equal(t, 2, s.Players[0].Score)
	assert.Equal(t, 3, s.LargestArmySize)
	assertScoreInvariant(t, s)

	// Seat 1 must strictly exceed the new threshold.
	s.Turn = 1
	playKnight("p2")
	playKnight("p2")
	playKnight("p2")
	assert.Equal(t, "p1", s.LargestArmyHolder, "equal count does not transfer")

	playKnight("p2")
	assert.Equal(t, "p2", s.LargestArmyHolder)
	assert.Zero(t, s.Players[0].Score, "previous holder loses exactly two")
	assert.Equal(t, 2, s.Players[1].Score)
	assert.Equal(t, 4, s.LargestArmySize)
	assertScoreInvariant(t, s)
}

// --- building in the main phase ---

func TestBuildSettlementPlaying(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	p := s.Players[0]

	assert.ErrorIs(t, s.BuildSettlement("p1", "v1", nil, nil), ErrNoRoadAtVertex)

	s.Roads["e1"] = &Road{PlayerID: "p1", V1: "v1", V2: "v2"}
	assert.ErrorIs(t, s.BuildSettlement("p1", "v1", nil, nil), ErrInsufficientFunds)

	p.Resources = ResourceSet{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}
	s.Settlements["n1"] = &Settlement{PlayerID: "p2"}
	s.Players[1].Score = 1
	assert.ErrorIs(t, s.BuildSettlement("p1", "v1", nil, []string{"n1"}), ErrVertexTooClose)
	assert.Equal(t, 4, p.Resources.Total(), "rejected build mutates nothing")

	require.NoError(t, s.BuildSettlement("p1", "v1", []int{0}, []string{"n2"}))
	assert.Zero(t, p.Resources.Total())
	assert.Equal(t, 1, p.Score)
	assert.Equal(t, SubPhaseRoad, s.SubPhase)
	assertScoreInvariant(t, s)
}

func TestUpgradeToCity(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Settlements["v1"] = &Settlement{PlayerID: "p1"}
	s.Settlements["v2"] = &Settlement{PlayerID: "p2"}
	s.Players[0].Score = 1
	s.Players[1].Score = 1

	assert.ErrorIs(t, s.BuildSettlement("p1", "v1", nil, nil), ErrInsufficientFunds)

	s.Players[0].Resources = ResourceSet{Ore: 3, Wheat: 2}
	assert.ErrorIs(t, s.BuildSettlement("p1", "v2", nil, nil), ErrNotYourSettlement)

	require.NoError(t, s.BuildSettlement("p1", "v1", nil, nil))
	assert.True(t, s.Settlements["v1"].IsCity)
	assert.Equal(t, 2, s.Players[0].Score)
	assert.Zero(t, s.Players[0].Resources.Total())

	s.Players[0].Resources = ResourceSet{Ore: 3, Wheat: 2}
	assert.ErrorIs(t, s.BuildSettlement("p1", "v1", nil, nil), ErrAlreadyCity)
	assertScoreInvariant(t, s)
}

func TestUpgradeRequiresPlayingPhase(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	s.Settlements["v1"] = &Settlement{PlayerID: "p1"}
	s.Players[0].Resources = ResourceSet{Ore: 3, Wheat: 2}

	assert.ErrorIs(t, s.BuildSettlement("p1", "v1", nil, nil), ErrWrongPhase)
}

func TestBuildRoadPlaying(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	p := s.Players[0]

	assert.ErrorIs(t, s.BuildRoad("p1", "e1", "v1", "v2"), ErrRoadDetached)

	s.Settlements["v1"] = &Settlement{PlayerID: "p1"}
	assert.ErrorIs(t, s.BuildRoad("p1", "e1", "v1", "v2"), ErrInsufficientFunds)

	p.Resources = ResourceSet{Wood: 2, Brick: 2}
	require.NoError(t, s.BuildRoad("p1", "e1", "v1", "v2"))
	assert.Equal(t, ResourceSet{Wood: 1, Brick: 1}, p.Resources)

	assert.ErrorIs(t, s.BuildRoad("p1", "e1", "v1", "v2"), ErrEdgeOccupied)

	// Chaining off the first road works.
	require.NoError(t, s.BuildRoad("p1", "e2", "v2", "v3"))
	assert.Zero(t, p.Resources.Total())

	// An opponent's network does not count.
	s.Players[1].Resources = ResourceSet{Wood: 1, Brick: 1}
	s.Turn = 1
	assert.ErrorIs(t, s.BuildRoad("p2", "e3", "v3", "v4"), ErrRoadDetached)
}

// --- turn passing and game end ---

func TestPassTurn(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda", "Cyril")
	enterPlaying(s)

	assert.ErrorIs(t, s.PassTurn("p1"), ErrRollFirst)

	s.HasRolled = true
	s.WaitingForRobber = true
	assert.ErrorIs(t, s.PassTurn("p1"), ErrRobberPending)

	s.WaitingForRobber = false
	s.Players[1].DiscardNeeded = 2
	assert.ErrorIs(t, s.PassTurn("p1"), ErrDiscardPending)

	s.Players[1].DiscardNeeded = 0
	s.PlayedCardThisTurn = true
	s.SubPhase = SubPhaseRoad
	require.NoError(t, s.PassTurn("p1"))
	assert.Equal(t, 1, s.Turn)
	assert.False(t, s.HasRolled)
	assert.False(t, s.PlayedCardThisTurn)
	assert.Equal(t, SubPhaseSettlement, s.SubPhase)

	// The turn pointer wraps around.
	s.Turn = 2
	s.HasRolled = true
	require.NoError(t, s.PassTurn("p3"))
	assert.Zero(t, s.Turn)
}

func TestWinnerEndsGame(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)
	s.Players[0].Score = 9
	s.Roads["e1"] = &Road{PlayerID: "p1", V1: "v1", V2: "v2"}
	s.Players[0].Resources = ResourceSet{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}

	require.NoError(t, s.BuildSettlement("p1", "v1", nil, nil))
	assert.Equal(t, "Anna", s.Winner)

	// Every rules intent is rejected after the win.
	assert.ErrorIs(t, s.RollDice("p1"), ErrGameOver)
	assert.ErrorIs(t, s.PassTurn("p1"), ErrGameOver)
	assert.ErrorIs(t, s.BankTrade("p1", board.Wood, board.Ore), ErrGameOver)
	assert.ErrorIs(t, s.BuildRoad("p1", "e2", "v1", "v3"), ErrGameOver)
}

func TestVoteRestart(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")
	enterPlaying(s)

	_, err := s.VoteRestart("p1")
	assert.ErrorIs(t, err, ErrNoWinnerYet)

	s.Players[0].Score = 10
	s.checkWinner()
	require.Equal(t, "Anna", s.Winner)

	_, err = s.VoteRestart("zzz")
	assert.ErrorIs(t, err, ErrNotSeated)

	restarted, err := s.VoteRestart("p1")
	require.NoError(t, err)
	assert.False(t, restarted)

	// Voting twice counts once.
	restarted, err = s.VoteRestart("p1")
	require.NoError(t, err)
	assert.False(t, restarted)
	assert.Len(t, s.RestartVotes(), 1)

	restarted, err = s.VoteRestart("p2")
	require.NoError(t, err)
	assert.True(t, restarted, "unanimous vote restarts in place")
	assert.Empty(t, s.Winner)
	assert.Equal(t, PhaseSetup1, s.Phase)
	assert.Zero(t, s.Players[0].Score)
}

// --- debug backdoors ---

func TestDebugGrants(t *testing.T) {
	s := newTestSession(t, "Anna", "Beda")

	require.NoError(t, s.GrantKnight("p2"))
	assert.Equal(t, 1, s.Players[1].DevCards.Knight)

	require.NoError(t, s.GrantAllResources("p2"))
	assert.Equal(t, ResourceSet{Wood: 5, Brick: 5, Sheep: 5, Wheat: 5, Ore: 5}, s.Players[1].Resources)

	assert.ErrorIs(t, s.GrantKnight("zzz"), ErrNotSeated)
}
