package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles shared by the lobby and game views.
var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	instructionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	robberStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Render
	winnerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Blink(true)
)

// tileIcons maps tile types to their display glyph.
var tileIcons = map[string]string{
	"WOOD":   "🌲",
	"BRICK":  "🧱",
	"SHEEP":  "🐑",
	"WHEAT":  "🌾",
	"ORE":    "⛰️",
	"DESERT": "🏜️",
}
