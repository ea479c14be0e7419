package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colour palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - primary buttons, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - update button, success
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - refresh/reboot, warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 160
)

// Navigation bar styles
var (
	NavPrimaryStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor)

	NavRefreshStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(WarningColor)

	NavSelfUpdateStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#000000")).
				Background(SuccessColor).
				Bold(true)

	NavPickerStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Underline(true)

	NavTextStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// NavFocusStyle is layered over the focused control.
	NavFocusStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Reverse(true)

	NavFrameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(MutedColor)

	TooltipStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// Boxed output styles
var (
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningTitleStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	TroubleshootingItemStyle = lipgloss.NewStyle().
					Foreground(MutedColor)
)

// Result markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
)

// GetTerminalWidth returns the stdout terminal width clamped to the supported
// range.
func GetTerminalWidth() int {
	width, _ := GetTerminalSize()
	return width
}

// GetTerminalSize returns the stdout terminal size, falling back to
// MinTerminalWidth x 24 when stdout is not a terminal.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	return clampWidth(width), height
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
