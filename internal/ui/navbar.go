package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uad-ng/uad-tui/internal/navbar"
)

// unitsPerCell converts navbar size units to terminal cells.
const unitsPerCell = 5

func cells(units int) int {
	return units / unitsPerCell
}

// NoFocus renders the bar without a focused control.
const NoFocus = -1

// RenderNavBar renders d as a single bar of the given total width. focus is
// the index into d.Controls of the focused control, or NoFocus.
//
// Invisible controls take no space. The spacer absorbs whatever width is
// left so the trailing controls stay pinned to the right edge.
func RenderNavBar(d navbar.Description, width, focus int) string {
	pad := cells(d.Padding)
	gap := strings.Repeat(" ", cells(d.Spacing))

	inner := width - 2*pad
	if !d.FullWidth {
		inner = 0
	}

	type piece struct {
		text   string
		spacer bool
	}
	var pieces []piece
	used := 0
	for i, c := range d.Controls {
		if !c.Visible {
			continue
		}
		if c.Kind == navbar.KindSpacer {
			pieces = append(pieces, piece{spacer: true})
			continue
		}
		text := renderControl(c, i == focus)
		used += lipgloss.Width(text)
		pieces = append(pieces, piece{text: text})
	}
	if len(pieces) > 1 {
		used += (len(pieces) - 1) * len(gap)
	}

	fill := inner - used
	if fill < 1 {
		fill = 1
	}

	parts := make([]string, len(pieces))
	for i, p := range pieces {
		if p.spacer {
			parts[i] = strings.Repeat(" ", fill)
		} else {
			parts[i] = p.text
		}
	}
	line := strings.Join(parts, gap)

	frame := NavFrameStyle.Padding(0, pad)
	if d.FullWidth {
		frame = frame.Width(width)
	}
	switch d.Align {
	case navbar.AlignCenter:
		frame = frame.AlignVertical(lipgloss.Center)
	case navbar.AlignEnd:
		frame = frame.AlignVertical(lipgloss.Bottom)
	default:
		frame = frame.AlignVertical(lipgloss.Top)
	}
	return frame.Render(line)
}

// RenderTooltip returns the styled tooltip of the focused control, or "".
func RenderTooltip(d navbar.Description, focus int) string {
	if focus < 0 || focus >= len(d.Controls) || d.Controls[focus].Tooltip == "" {
		return ""
	}
	return TooltipStyle.Render(d.Controls[focus].Tooltip)
}

func renderControl(c navbar.Control, focused bool) string {
	var style lipgloss.Style
	label := c.Label

	switch c.Kind {
	case navbar.KindPicker:
		style = NavPickerStyle
		label = "‹ " + label + " ›"
	case navbar.KindText:
		style = NavTextStyle
	default:
		style = buttonStyle(c.Style).Padding(0, cells(c.Padding))
	}

	if focused {
		style = style.Inherit(NavFocusStyle)
	}
	return style.Render(label)
}

func buttonStyle(s navbar.Style) lipgloss.Style {
	switch s {
	case navbar.StyleRefresh:
		return NavRefreshStyle
	case navbar.StyleSelfUpdate:
		return NavSelfUpdateStyle
	case navbar.StylePrimary:
		return NavPrimaryStyle
	default:
		return NavTextStyle
	}
}
