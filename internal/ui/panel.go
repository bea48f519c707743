package ui

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/remote"
)

// refreshInterval drives the busy-state poll while a transmission plays.
const refreshInterval = 100 * time.Millisecond

// tickMsg refreshes the transmission status line.
type tickMsg time.Time

// panelKeyMap defines key bindings for the front panel
type panelKeyMap struct {
	Power     key.Binding
	Mode      key.Binding
	Fan       key.Binding
	TempUp    key.Binding
	TempDown  key.Binding
	Send      key.Binding
	Deflector key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k panelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.Mode, k.Fan, k.Send, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k panelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Power, k.Mode, k.Fan},
		{k.TempUp, k.TempDown},
		{k.Send, k.Deflector, k.Quit},
	}
}

var panelKeys = panelKeyMap{
	Power: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "power"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mode"),
	),
	Fan: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fan"),
	),
	TempUp: key.NewBinding(
		key.WithKeys("up", "+", "="),
		key.WithHelp("↑/+", "temp up"),
	),
	TempDown: key.NewBinding(
		key.WithKeys("down", "-"),
		key.WithHelp("↓/-", "temp down"),
	),
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Deflector: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deflector"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// modeCycle is the order the mode button steps through.
var modeCycle = []protocol.Mode{
	protocol.ModeAuto,
	protocol.ModeCool,
	protocol.ModeHeat,
	protocol.ModeFan,
}

// Model is the front panel bubbletea model.
type Model struct {
	remote *remote.Remote
	keys   panelKeyMap
	help   help.Model

	status string
	width  int
}

// NewModel returns a front panel driving r.
func NewModel(r *remote.Remote) Model {
	return Model{
		remote: r,
		keys:   panelKeys,
		help:   help.New(),
		status: "idle",
		width:  GetTerminalWidth(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}
		m.help.Width = m.width
		return m, nil

	case tickMsg:
		if m.remote.Busy() {
			m.status = "transmitting"
		} else if m.status == "transmitting" {
			m.status = "sent"
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.remote.Command()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Power):
		m.remote.SetEnabled(!cmd.Enabled)

	case key.Matches(msg, m.keys.Mode):
		m.remote.SetMode(nextMode(cmd.Mode))

	case key.Matches(msg, m.keys.Fan):
		m.remote.SetFanLevel(protocol.FanLevel((uint8(cmd.FanLevel) + 1) % 4))

	case key.Matches(msg, m.keys.TempUp):
		if cmd.Temperature < protocol.TempMax {
			m.remote.SetTemperature(cmd.Temperature + 1)
		}

	case key.Matches(msg, m.keys.TempDown):
		if cmd.Temperature > protocol.TempMin {
			m.remote.SetTemperature(cmd.Temperature - 1)
		}

	case key.Matches(msg, m.keys.Send):
		if err := m.remote.Send(); err != nil {
			m.status = "rejected: " + err.Error()
		} else {
			m.status = "transmitting"
		}

	case key.Matches(msg, m.keys.Deflector):
		if err := m.remote.MoveDeflector(); err != nil {
			m.status = "rejected: " + err.Error()
		} else {
			m.status = "transmitting"
		}
	}

	return m, nil
}

func nextMode(m protocol.Mode) protocol.Mode {
	for i, mode := range modeCycle {
		if mode == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

// View implements tea.Model.
func (m Model) View() string {
	cmd := m.remote.Command()
	var b strings.Builder

	b.WriteString(TitleStyle.Render("mideair front panel"))
	b.WriteString("\n\n")

	b.WriteString(m.readout(cmd))
	b.WriteString("\n\n")

	b.WriteString(m.fieldRows(cmd))
	b.WriteString("\n")

	raw := protocol.Expand(protocol.Encode(cmd).Bytes())
	b.WriteString(FrameStyle.Render("frame " + hex.EncodeToString(raw[:])))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// readout mimics the board's two-digit display: temperature when on, blank
// when off.
func (m Model) readout(cmd protocol.Command) string {
	if !cmd.Enabled {
		return ReadoutOffStyle.Render("--")
	}
	if cmd.Mode == protocol.ModeFan {
		return ReadoutStyle.Render("FA")
	}
	return ReadoutStyle.Render(fmt.Sprintf("%2d", cmd.Temperature))
}

func (m Model) fieldRows(cmd protocol.Command) string {
	power := "off"
	powerStyle := ValueStyle
	if cmd.Enabled {
		power = "on"
		powerStyle = OnStyle
	}

	fan := cmd.FanLevel.String()
	if cmd.Mode == protocol.ModeAuto {
		fan = "auto (forced)"
	}

	temp := fmt.Sprintf("%d C", cmd.Temperature)
	if cmd.Mode == protocol.ModeFan {
		temp = "n/a"
	}

	rows := []string{
		LabelStyle.Render("Power") + powerStyle.Render(power),
		LabelStyle.Render("Mode") + ValueStyle.Render(cmd.Mode.String()),
		LabelStyle.Render("Temp") + ValueStyle.Render(temp),
		LabelStyle.Render("Fan") + ValueStyle.Render(fan),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) statusLine() string {
	switch {
	case strings.HasPrefix(m.status, "rejected"):
		return ErrorStyle.Render(m.status)
	case m.status == "transmitting":
		return BusyStyle.Render("● transmitting")
	case m.status == "sent":
		return OnStyle.Render("✓ sent")
	default:
		return LabelStyle.Render(m.status)
	}
}

// Run starts the front panel program and blocks until it exits.
func Run(r *remote.Remote) error {
	p := tea.NewProgram(NewModel(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
