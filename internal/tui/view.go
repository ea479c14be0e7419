package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/ui"
	"github.com/uad-ng/uad-tui/internal/urls"
	"github.com/uad-ng/uad-tui/internal/version"
)

// View renders the bar, the active screen and the help line.
func (m Model) View() string {
	d := m.Description()
	focus := m.focusIndex(d)

	var b strings.Builder
	b.WriteString(ui.RenderNavBar(d, m.width, focus))
	b.WriteString("\n")
	b.WriteString(ui.RenderTooltip(d, focus))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(ui.ErrorMessageStyle.Render(m.notice))
	}
	b.WriteString("\n")

	switch m.screen {
	case ScreenAbout:
		b.WriteString(m.renderAbout())
	case ScreenSettings:
		b.WriteString(m.renderSettings())
	default:
		b.WriteString(m.renderApps())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderApps() string {
	switch m.list.State {
	case apps.FindingPhones:
		return m.spinner.View() + " Searching for phones..."
	case apps.LoadingPackages:
		return m.spinner.View() + " Loading packages..."
	case apps.Failed:
		if len(m.list.Packages) == 0 {
			return ui.NewFailureResult("Could not read from the phone", m.list.Err,
				"Check that USB debugging is enabled and the computer is authorised",
				"Setup guide: "+urls.USBDebugging,
				"Press r to try again").
				SetWidth(m.width).
				String()
		}
	}
	if m.selected == nil {
		return ui.TooltipStyle.Render("Connect a phone with USB debugging enabled and press r.")
	}
	return m.packages.View()
}

func (m Model) renderAbout() string {
	repo := ""
	if s := m.opts.Settings; s != nil && s.Preferences != nil {
		repo = s.Preferences.UpdateRepo
	}
	r := ui.NewSuccessResult("uad-tui",
		ui.Field{Key: "Version", Value: m.opts.Running},
		ui.Field{Key: "Commit", Value: version.Commit},
		ui.Field{Key: "Update", Value: m.update.Status.String()},
	)
	if repo != "" {
		r.AddDetail("Releases", urls.Releases(repo))
	}
	return r.SetWidth(m.width).String()
}

func (m Model) renderSettings() string {
	s := m.opts.Settings
	if s == nil || s.Preferences == nil {
		return ui.TooltipStyle.Render("Settings are not available in this session.")
	}
	p := s.Preferences

	adbPath := p.ADB()
	if m.opts.ADB != "" && m.opts.ADB != adbPath {
		adbPath = m.opts.ADB + " (this run)"
	}
	last := p.LastDevice
	if last == "" {
		last = "none"
	}

	r := ui.NewSuccessResult("Settings",
		ui.Field{Key: "Update check", Value: onOff(p.CheckForUpdates)},
		ui.Field{Key: "Wireless", Value: onOff(p.WirelessDiscovery)},
		ui.Field{Key: "Scan time", Value: p.DiscoverDuration().String()},
		ui.Field{Key: "adb", Value: adbPath},
		ui.Field{Key: "Last phone", Value: last},
	)
	hint := m.help.ShortHelpView([]key.Binding{m.settingsKeys.ToggleUpdates, m.settingsKeys.ToggleWireless})
	return r.SetWidth(m.width).String() + "\n" + hint
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
