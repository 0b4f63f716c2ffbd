package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/session"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

func (m *Model) View() string {
	switch m.phase {
	case phaseName, phaseRoom:
		return m.lobbyView()
	default:
		return m.gameView()
	}
}

func (m *Model) lobbyView() string {
	var sb strings.Builder

	title := titleStyle("🏝️  Osadníci z Katanu")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	prompt := "Jak se jmenuješ?"
	if m.phase == phaseRoom {
		prompt = fmt.Sprintf("Ahoj, %s! Ke kterému stolu si sedneš?", m.displayName())
	}
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, prompt))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.input.View()))

	if m.errMsg != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, errorStyle.Render(m.errMsg)))
	}
	return sb.String()
}

func (m *Model) displayName() string {
	if m.playerName != "" {
		return m.playerName
	}
	return "hráči"
}

func (m *Model) gameView() string {
	var sb strings.Builder

	if m.state == nil {
		sb.WriteString(titleStyle("🏝️  Osadníci z Katanu"))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render("Čeká se na druhého hráče..."))
		sb.WriteString("\n\n")
		sb.WriteString(m.input.View())
		return sb.String()
	}
	s := m.state

	if s.Winner != "" {
		sb.WriteString(winnerStyle.Render(fmt.Sprintf("🏆 %s vyhrál hru! Napiš vote pro novou hru.", s.Winner)))
	} else {
		sb.WriteString(instructionStyle.Render(s.Instruction))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("🎲 %d + %d   balíček: %d karet", s.LastDice[0], s.LastDice[1], s.DeckSize)))
	sb.WriteString("\n\n")

	board := boxStyle.Padding(0, 1).Render(renderTiles(s))
	players := boxStyle.Padding(0, 1).Render(m.renderPlayers(s))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, " ", players))
	sb.WriteString("\n")

	if len(s.Logs) > 0 {
		sb.WriteString(boxStyle.Padding(0, 1).Render(strings.Join(s.Logs, "\n")))
		sb.WriteString("\n")
	}

	if m.showLeaderboard {
		sb.WriteString(boxStyle.Padding(0, 1).Render(renderLeaderboard(m.leaderboard)))
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
		sb.WriteString("\n")
	}
	if m.errMsg != "" {
		sb.WriteString(errorStyle.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString(m.input.View())
	return sb.String()
}

// renderTiles lays the 19 tiles out in their five rows. Each cell shows
// the tile id, terrain glyph and number token; the robber's tile is
// highlighted.
func renderTiles(s *session.Snapshot) string {
	var rows []string
	start := 0
	for _, rowLen := range []int{3, 4, 5, 4, 3} {
		var cells []string
		for i := start; i < start+rowLen && i < len(s.Tiles); i++ {
			tile := s.Tiles[i]
			num := "  "
			if tile.Number > 0 {
				num = fmt.Sprintf("%2d", tile.Number)
			}
			cell := fmt.Sprintf("%2d:%s%s", tile.ID, tileIcons[string(tile.Type)], num)
			if tile.ID == s.RobberTile {
				cell = robberStyle(cell)
			}
			cells = append(cells, cell)
		}
		start += rowLen
		indent := strings.Repeat("    ", (5-rowLen)+1)
		rows = append(rows, indent+strings.Join(cells, "  "))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderPlayers(s *session.Snapshot) string {
	var sb strings.Builder
	for i, p := range s.Players {
		marker := "  "
		if i == s.Turn {
			marker = "▶ "
		}
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Bold(true)
		name := nameStyle.Render(p.Name)
		if p.ID == m.client.PlayerID {
			name += dimStyle.Render(" (ty)")
		}
		fmt.Fprintf(&sb, "%s%s  %d bodů\n", marker, name, p.Score)

		if p.ID == m.client.PlayerID {
			r := p.Resources
			fmt.Fprintf(&sb, "   🌲%d 🧱%d 🐑%d 🌾%d ⛰️%d\n",
				r.Wood, r.Brick, r.Sheep, r.Wheat, r.Ore)
			d := p.DevCards
			fmt.Fprintf(&sb, "   karty: ⚔️%d ⭐%d 📜%d\n", d.Knight, d.Point, d.Progress)
		} else {
			fmt.Fprintf(&sb, "   %d surovin, %d karet\n",
				p.Resources.Total(), p.DevCards.Knight+p.DevCards.Point+p.DevCards.Progress)
		}
		if p.KnightsPlayed > 0 {
			army := fmt.Sprintf("   ⚔️ rytířů: %d", p.KnightsPlayed)
			if s.LargestArmyHolder == p.ID {
				army += " 🎖️"
			}
			sb.WriteString(army + "\n")
		}
		if p.DiscardNeeded > 0 {
			sb.WriteString(errorStyle.Render(fmt.Sprintf("   musí odhodit %d", p.DiscardNeeded)) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderLeaderboard(entries []protocol.LeaderboardEntry) string {
	var sb strings.Builder
	sb.WriteString("🏆 Síň slávy\n")
	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("zatím žádné výhry"))
		return sb.String()
	}
	for i, e := range entries {
		fmt.Fprintf(&sb, "%2d. %-16s %d výher / %d her\n", i+1, e.Name, e.Wins, e.Games)
	}
	return strings.TrimRight(sb.String(), "\n")
}
