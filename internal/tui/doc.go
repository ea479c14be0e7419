// Package tui is the interactive uad-tui application.
//
// Model keeps the four pieces of state the navigation bar is composed from
// (connected phones, the selected phone, the app list and the self-update
// state) plus the active screen. Every View composes the bar afresh with
// navbar.Compose and renders it with ui.RenderNavBar; nothing about the bar
// is cached between frames.
//
// All navigation bar activations, whether from the focused control or a
// shortcut key, go through Model.Dispatch. Slow work (adb, mDNS, HTTP) runs
// in tea.Cmds and comes back as messages.
//
// # Keys
//
//	←/→ h/l   move focus along the bar
//	enter     activate the focused control
//	[ ]       previous / next phone
//	r b u     refresh, reboot, update
//	a o s     apps, about, settings screens
//	q         quit
package tui
