// Package ui is the terminal client: a Bubble Tea program with a small
// lobby flow and a command-line driven game view.
package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/client"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/game/session"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/sound"
)

// uiPhase is the screen being shown.
type uiPhase int

const (
	phaseName uiPhase = iota // asking for the player name
	phaseRoom                // asking for the room to join
	phaseGame                // seated, showing the board
)

// Model is the root Bubble Tea model.
type Model struct {
	client *client.Client
	sounds *sound.Manager

	phase uiPhase
	input textinput.Model

	width  int
	height int

	playerName string
	roomID     string

	state           *session.Snapshot
	leaderboard     []protocol.LeaderboardEntry
	showLeaderboard bool

	status string
	errMsg string
}

// NewModel builds the root model around a connected client.
func NewModel(c *client.Client, sounds *sound.Manager) *Model {
	input := textinput.New()
	input.Placeholder = "Zadej své jméno..."
	input.CharLimit = 24
	input.Width = 40
	input.Focus()

	return &Model{
		client: c,
		sounds: sounds,
		phase:  phaseName,
		input:  input,
	}
}

// serverMsg wraps one message received from the server.
type serverMsg struct {
	msg *protocol.Message
}

// connClosedMsg signals that the connection died.
type connClosedMsg struct{}

// waitForServer blocks on the next server message.
func waitForServer(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.Receive()
		if err != nil {
			return connClosedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForServer(m.client), textinput.Blink)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.client.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case serverMsg:
		m.handleServerMessage(msg.msg)
		return m, waitForServer(m.client)

	case connClosedMsg:
		m.errMsg = "Spojení se serverem bylo ztraceno."
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit consumes the input line according to the current screen.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.errMsg = ""

	switch m.phase {
	case phaseName:
		m.playerName = line
		m.phase = phaseRoom
		m.input.Placeholder = "Zadej název stolu..."
		return m, nil

	case phaseRoom:
		if line == "" {
			m.errMsg = "Název stolu nesmí být prázdný."
			return m, nil
		}
		m.roomID = line
		if err := m.client.JoinRoom(m.roomID, m.playerName); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.phase = phaseGame
		m.input.Placeholder = "Příkaz (help pro nápovědu)..."
		return m, nil

	case phaseGame:
		if line == "" {
			return m, nil
		}
		if strings.EqualFold(line, "quit") {
			m.client.Close()
			return m, tea.Quit
		}
		m.status = m.execCommand(line)
		return m, nil
	}
	return m, nil
}

// handleServerMessage folds one server message into the model.
func (m *Model) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgGameState:
		snap, err := client.ParseGameState(msg)
		if err != nil {
			return
		}
		m.applyState(snap)

	case protocol.MsgCardBoughtInfo:
		var payload protocol.CardBoughtPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.status = fmt.Sprintf("Koupil jsi kartu: %s", cardName(payload.Card))
			m.sounds.Play(sound.EffectCard)
		}

	case protocol.MsgVisualCardPlay:
		var payload protocol.VisualCardPlayPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.status = fmt.Sprintf("%s zahrál kartu: %s", payload.PlayerName, cardName(payload.Type))
			m.sounds.Play(sound.EffectCard)
		}

	case protocol.MsgRoomDestroyed:
		m.state = nil
		m.phase = phaseRoom
		m.input.Placeholder = "Zadej název stolu..."
		m.errMsg = "Protihráč opustil hru, stůl byl zrušen."

	case protocol.MsgLeaderboardData:
		var payload protocol.LeaderboardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			m.leaderboard = payload.Entries
			m.showLeaderboard = true
		}
	}
}

// applyState swaps in a fresh snapshot and plays the sounds for what
// changed since the previous one.
func (m *Model) applyState(snap *session.Snapshot) {
	prev := m.state
	m.state = snap

	if prev == nil {
		return
	}
	if snap.HasRolled && !prev.HasRolled {
		m.sounds.Play(sound.EffectDice)
	}
	if len(snap.Settlements) > len(prev.Settlements) || len(snap.Roads) > len(prev.Roads) {
		m.sounds.Play(sound.EffectBuild)
	}
	if snap.Winner != "" && prev.Winner == "" {
		m.sounds.Play(sound.EffectWin)
	}
}
