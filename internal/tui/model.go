package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/logging"
	"github.com/uad-ng/uad-tui/internal/navbar"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
	"github.com/uad-ng/uad-tui/internal/ui"
)

// Screen is the body shown below the navigation bar.
type Screen string

const (
	ScreenApps     Screen = "apps"
	ScreenAbout    Screen = "about"
	ScreenSettings Screen = "settings"
)

const defaultWidth = 100

// Model is the top-level bubbletea model.
type Model struct {
	opts Options

	// Navigation bar inputs
	devices  []device.Phone
	selected *device.Phone
	list     apps.List
	update   selfupdate.State

	screen Screen
	focus  navbar.Role
	notice string

	width  int
	height int

	packages     list.Model
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	settingsKeys settingsKeyMap
}

// New creates the model. Phones are searched for as soon as the program starts.
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.NavTextStyle

	pl := list.New(nil, list.NewDefaultDelegate(), defaultWidth, 20)
	pl.Title = "Packages"
	pl.SetShowHelp(false)
	pl.SetStatusBarItemName("package", "packages")

	return Model{
		opts:         opts,
		list:         apps.List{State: apps.FindingPhones},
		screen:       ScreenApps,
		focus:        navbar.RoleRefresh,
		width:        defaultWidth,
		packages:     pl,
		spinner:      s,
		help:         help.New(),
		keys:         defaultKeyMap(),
		settingsKeys: defaultSettingsKeyMap(),
	}
}

// Init starts the phone search, the spinner and, when enabled, the update check.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		findPhones(m.opts.Phones, m.opts.Scanner),
	}
	if m.opts.Checker != nil {
		cmds = append(cmds, checkForUpdate(m.opts.Checker, m.opts.Running))
	}
	return tea.Batch(cmds...)
}

// Description composes the navigation bar for the current state.
func (m Model) Description() navbar.Description {
	return navbar.Compose(m.devices, m.selected, m.list.State, m.update, m.opts.Running)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.packages.SetSize(msg.Width, m.bodyHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case devicesMsg:
		return m.handleDevices(msg)

	case packagesMsg:
		return m.handlePackages(msg)

	case rebootMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Reboot of %s failed: %v", msg.phone, msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("Rebooting %s", msg.phone)
		return m.Dispatch(navbar.Event{Kind: navbar.EventRefreshApps})

	case updateCheckMsg:
		if msg.err != nil {
			logging.Warn("update check failed", zap.Error(msg.err))
			m.update = selfupdate.State{Status: selfupdate.Failed, Err: msg.err}
			return m, nil
		}
		m.update = msg.state
		return m, nil

	case updateAppliedMsg:
		m.update = m.update.Finish(msg.err)
		if msg.err != nil {
			m.notice = fmt.Sprintf("Update failed: %v", msg.err)
		} else {
			m.notice = "Update installed, restart uad-tui to use it"
		}
		return m, nil
	}

	if m.screen == ScreenApps {
		var cmd tea.Cmd
		m.packages, cmd = m.packages.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The package filter owns the keyboard while it is open.
	if m.screen == ScreenApps && m.packages.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.packages, cmd = m.packages.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.focus = m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.focus = m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		d := m.Description()
		idx := m.focusIndex(d)
		if idx == ui.NoFocus {
			return m, nil
		}
		ev, ok := d.Controls[idx].Activate()
		if !ok {
			return m, nil
		}
		return m.Dispatch(ev)
	case key.Matches(msg, m.keys.PrevOpt), key.Matches(msg, m.keys.NextOpt):
		picker, ok := m.Description().Picker()
		if !ok {
			return m, nil
		}
		step := picker.Next
		if key.Matches(msg, m.keys.PrevOpt) {
			step = picker.Prev
		}
		p, ok := step()
		if !ok {
			return m, nil
		}
		return m.Dispatch(picker.Choose(p))
	case key.Matches(msg, m.keys.Refresh):
		return m.activateRole(navbar.RoleRefresh)
	case key.Matches(msg, m.keys.Reboot):
		return m.activateRole(navbar.RoleReboot)
	case key.Matches(msg, m.keys.Update):
		return m.activateRole(navbar.RoleUpdateButton)
	case key.Matches(msg, m.keys.Apps):
		return m.activateRole(navbar.RoleAppsButton)
	case key.Matches(msg, m.keys.About):
		return m.activateRole(navbar.RoleAboutButton)
	case key.Matches(msg, m.keys.Settings):
		return m.activateRole(navbar.RoleSettingsButton)
	}

	if m.screen == ScreenSettings {
		return m.handleSettingsKey(msg)
	}
	if m.screen == ScreenApps {
		var cmd tea.Cmd
		m.packages, cmd = m.packages.Update(msg)
		return m, cmd
	}
	return m, nil
}

// activateRole runs a shortcut through the bar so that keys only do what
// the visible controls allow; a hidden Update placeholder does nothing.
func (m Model) activateRole(role navbar.Role) (tea.Model, tea.Cmd) {
	c, ok := m.Description().Find(role)
	if !ok {
		return m, nil
	}
	ev, ok := c.Activate()
	if !ok {
		return m, nil
	}
	m.focus = role
	return m.Dispatch(ev)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.opts.Settings
	if s == nil || s.Preferences == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.settingsKeys.ToggleUpdates):
		s.Preferences.CheckForUpdates = !s.Preferences.CheckForUpdates
	case key.Matches(msg, m.settingsKeys.ToggleWireless):
		s.Preferences.WirelessDiscovery = !s.Preferences.WirelessDiscovery
	default:
		return m, nil
	}
	m.saveSettings()
	return m, nil
}

func (m *Model) saveSettings() {
	if m.opts.Save == nil || m.opts.Settings == nil {
		return
	}
	if err := m.opts.Save(m.opts.Settings); err != nil {
		logging.Warn("failed to save settings", zap.Error(err))
		m.notice = fmt.Sprintf("Could not save settings: %v", err)
	}
}

// Dispatch applies a navigation bar event. It is the only place bar
// activations change state.
func (m Model) Dispatch(ev navbar.Event) (Model, tea.Cmd) {
	logging.LogNavEvent(ev.Kind.String(), zap.String("phone", ev.Phone.Serial))

	switch ev.Kind {
	case navbar.EventRefreshApps:
		m.list = m.list.StartFinding()
		m.packages.SetItems(nil)
		return m, findPhones(m.opts.Phones, m.opts.Scanner)

	case navbar.EventDeviceSelected:
		return m.selectPhone(ev.Phone)

	case navbar.EventRebootDevice:
		if m.selected == nil {
			m.notice = "No phone selected"
			return m, nil
		}
		return m, rebootPhone(m.opts.Phones, *m.selected)

	case navbar.EventTriggerSelfUpdate:
		if m.update.LatestRelease == nil || m.update.Status == selfupdate.Updating {
			return m, nil
		}
		if m.opts.Applier == nil {
			m.notice = fmt.Sprintf("Download %s from %s", m.update.LatestRelease.TagName, m.update.LatestRelease.HTMLURL)
			return m, nil
		}
		m.update = m.update.StartUpdate()
		return m, applyUpdate(m.opts.Applier, m.update.LatestRelease)

	case navbar.EventGoToApps:
		m.screen = ScreenApps
	case navbar.EventGoToAbout:
		m.screen = ScreenAbout
	case navbar.EventGoToSettings:
		m.screen = ScreenSettings
	default:
		logging.Debug("ignoring navigation event", zap.Stringer("event", ev))
	}
	return m, nil
}

func (m Model) selectPhone(p device.Phone) (Model, tea.Cmd) {
	m.selected = &p
	m.list = m.list.StartLoading()
	m.packages.SetItems(nil)
	m.packages.Title = fmt.Sprintf("Packages on %s", p)

	if s := m.opts.Settings; s != nil {
		s.SelectDevice(p.Serial)
		s.RememberDevice(p.Serial, p.Model)
		m.saveSettings()
	}
	return m, loadPackages(m.opts.Phones, p.Serial)
}

func (m Model) handleDevices(msg devicesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Error("device search failed", zap.Error(msg.err))
		m.devices = nil
		m.selected = nil
		m.list = m.list.Fail(msg.err)
		m.notice = msg.err.Error()
		return m, nil
	}

	// Phones already in the picker keep their place; new ones go last.
	online := device.OnlineOnly(msg.phones)
	var kept []device.Phone
	for _, p := range m.devices {
		if q, ok := device.Find(online, p.Serial); ok {
			kept = append(kept, q)
		}
	}
	m.devices = device.Merge(kept, online)
	for _, p := range m.devices {
		logging.LogDeviceEvent(p.Serial, "found")
	}

	if next, ok := m.preferredPhone(); ok {
		return m.selectPhone(next)
	}
	m.selected = nil
	m.list = m.list.Clear().Loaded(nil)
	m.packages.SetItems(nil)
	return m, nil
}

// preferredPhone keeps the current selection when it is still connected,
// then falls back to the phone used last time and finally the first one.
func (m Model) preferredPhone() (device.Phone, bool) {
	if len(m.devices) == 0 {
		return device.Phone{}, false
	}
	if m.selected != nil {
		if p, ok := device.Find(m.devices, m.selected.Serial); ok {
			return p, true
		}
	}
	if s := m.opts.Settings; s != nil && s.Preferences != nil && s.Preferences.LastDevice != "" {
		if p, ok := device.Find(m.devices, s.Preferences.LastDevice); ok {
			return p, true
		}
	}
	return m.devices[0], true
}

func (m Model) handlePackages(msg packagesMsg) (tea.Model, tea.Cmd) {
	// A reply for a phone that is no longer selected is stale.
	if m.selected == nil || m.selected.Serial != msg.serial {
		return m, nil
	}
	if msg.err != nil {
		logging.Error("package listing failed",
			zap.String("serial", msg.serial),
			zap.Error(msg.err))
		m.list = m.list.Fail(msg.err)
		m.notice = msg.err.Error()
		return m, nil
	}
	m.list = m.list.Loaded(msg.packages)
	items := make([]list.Item, 0, len(m.list.Packages))
	for _, p := range m.list.Packages {
		items = append(items, packageItem{pkg: p})
	}
	cmd := m.packages.SetItems(items)
	m.notice = ""
	return m, cmd
}

// focusIndex maps the focused role onto the current description. When the
// role is gone (the bar changed shape) focus falls back to the first
// focusable control.
func (m Model) focusIndex(d navbar.Description) int {
	focusable := d.Focusable()
	for _, i := range focusable {
		if d.Controls[i].Role == m.focus {
			return i
		}
	}
	if len(focusable) > 0 {
		return focusable[0]
	}
	return ui.NoFocus
}

func (m Model) moveFocus(delta int) navbar.Role {
	d := m.Description()
	focusable := d.Focusable()
	if len(focusable) == 0 {
		return m.focus
	}
	current := m.focusIndex(d)
	pos := 0
	for i, idx := range focusable {
		if idx == current {
			pos = i
			break
		}
	}
	n := len(focusable)
	next := ((pos+delta)%n + n) % n
	return d.Controls[focusable[next]].Role
}

func (m Model) bodyHeight() int {
	// bar (3 lines with border) + tooltip + notice + help
	h := m.height - 7
	if h < 5 {
		h = 5
	}
	return h
}

// Run starts the application on the terminal.
func Run(opts Options) error {
	start := time.Now()
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	logging.Debug("tui exited", zap.Duration("uptime", time.Since(start)), zap.Error(err))
	return err
}
