package ui

import (
	"strconv"
	"strings"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/board"
)

// resourceNames accepts both the wire names and Czech shortcuts.
var resourceNames = map[string]board.Resource{
	"wood":   board.Wood,
	"drevo":  board.Wood,
	"brick":  board.Brick,
	"cihla":  board.Brick,
	"sheep":  board.Sheep,
	"ovce":   board.Sheep,
	"wheat":  board.Wheat,
	"obili":  board.Wheat,
	"ore":    board.Ore,
	"kamen":  board.Ore,
}

func parseResource(s string) (board.Resource, bool) {
	r, ok := resourceNames[strings.ToLower(s)]
	return r, ok
}

func parseCard(s string) (board.DevCard, bool) {
	switch strings.ToLower(s) {
	case "knight", "rytir", "k":
		return board.Knight, true
	case "progress", "pokrok", "p":
		return board.Progress, true
	}
	return "", false
}

func cardName(card board.DevCard) string {
	switch card {
	case board.Knight:
		return "Rytíř"
	case board.Point:
		return "Vítězný bod"
	case board.Progress:
		return "Pokrok"
	}
	return string(card)
}

const helpText = `roll | pass | buy | play <rytir|pokrok>
settle <vrchol> | road <vrchol> <vrchol> | trade <dám> <chci>
rob <pole> | drop <surovina> | vote | lb | quit`

// execCommand parses and fires one game command. The returned string is
// user feedback; accepted intents return empty and the next broadcast
// updates the view.
func (m *Model) execCommand(line string) string {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "help":
		return helpText

	case "roll", "hod":
		m.send(m.client.RollDice(m.roomID))
		return ""

	case "pass", "konec":
		m.send(m.client.PassTurn(m.roomID))
		return ""

	case "buy", "kup":
		m.send(m.client.BuyDevCard(m.roomID))
		return ""

	case "play", "zahraj":
		if len(args) != 1 {
			return "Použití: play <rytir|pokrok>"
		}
		card, ok := parseCard(args[0])
		if !ok {
			return "Neznámá karta: " + args[0]
		}
		m.send(m.client.PlayDevCard(m.roomID, card))
		return ""

	case "settle", "postav":
		if len(args) != 1 {
			return "Použití: settle <vrchol>, např. settle 0,0N"
		}
		if err := m.client.BuildSettlement(m.roomID, args[0]); err != nil {
			return "Neplatný vrchol: " + args[0]
		}
		return ""

	case "road", "cesta":
		if len(args) != 2 {
			return "Použití: road <vrchol> <vrchol>"
		}
		if err := m.client.BuildRoad(m.roomID, args[0], args[1]); err != nil {
			return "Neplatná cesta: " + err.Error()
		}
		return ""

	case "rob", "zlodej":
		if len(args) != 1 {
			return "Použití: rob <číslo pole>"
		}
		hexID, err := strconv.Atoi(args[0])
		if err != nil {
			return "Pole musí být číslo."
		}
		m.send(m.client.MoveRobber(m.roomID, hexID))
		return ""

	case "drop", "odhod":
		if len(args) != 1 {
			return "Použití: drop <surovina>"
		}
		res, ok := parseResource(args[0])
		if !ok {
			return "Neznámá surovina: " + args[0]
		}
		m.send(m.client.DiscardResource(m.roomID, res))
		return ""

	case "trade", "obchod":
		if len(args) != 2 {
			return "Použití: trade <dám> <chci>"
		}
		give, ok := parseResource(args[0])
		if !ok {
			return "Neznámá surovina: " + args[0]
		}
		get, ok := parseResource(args[1])
		if !ok {
			return "Neznámá surovina: " + args[1]
		}
		m.send(m.client.BankTrade(m.roomID, give, get))
		return ""

	case "vote", "znovu":
		m.send(m.client.VoteRestart(m.roomID))
		return ""

	case "lb", "tabulka":
		m.send(m.client.GetLeaderboard(0))
		return ""

	case "cheatres":
		m.send(m.client.AddResources(m.roomID))
		return ""

	case "cheatknight":
		m.send(m.client.AddKnight(m.roomID))
		return ""
	}
	return "Neznámý příkaz. Napiš help."
}

// send surfaces transport failures; rule rejections never come back.
func (m *Model) send(err error) {
	if err != nil {
		m.errMsg = err.Error()
	}
}
