package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	PrevOpt  key.Binding
	NextOpt  key.Binding
	Refresh  key.Binding
	Reboot   key.Binding
	Update   key.Binding
	Apps     key.Binding
	About    key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Activate, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Activate, k.PrevOpt, k.NextOpt},
		{k.Refresh, k.Reboot, k.Update},
		{k.Apps, k.About, k.Settings, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "focus left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "focus right")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "activate")),
		PrevOpt:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev phone")),
		NextOpt:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next phone")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Reboot:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "reboot")),
		Update:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "self-update")),
		Apps:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apps")),
		About:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "about")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// settingsKeyMap is active on the settings screen only.
type settingsKeyMap struct {
	ToggleUpdates  key.Binding
	ToggleWireless key.Binding
}

func defaultSettingsKeyMap() settingsKeyMap {
	return settingsKeyMap{
		ToggleUpdates:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle update check")),
		ToggleWireless: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle wireless discovery")),
	}
}
