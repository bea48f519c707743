package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the front panel
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - power on, sent
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, busy rejects
	WarningColor = lipgloss.Color("#FFA500") // Orange - transmitting
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	MaxContentWidth  = 80 // Maximum content width before capping
)

var (
	// TitleStyle is for the panel header
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	// ReadoutStyle frames the temperature readout the way the hardware's
	// two-digit display sits on the board
	ReadoutStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 3).
			Bold(true)

	// ReadoutOffStyle dims the readout when the unit is off
	ReadoutOffStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Foreground(MutedColor).
			Padding(0, 3)

	// LabelStyle is for field labels (Power:, Mode:, ...)
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(8)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// OnStyle marks powered-on state
	OnStyle = lipgloss.NewStyle().
		Foreground(SuccessColor).
		Bold(true)

	// BusyStyle marks an in-flight transmission
	BusyStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle is for rejected sends and other errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// FrameStyle shows the encoded frame bytes
	FrameStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
