package tui

import (
	"github.com/uad-ng/uad-tui/internal/apps"
)

// packageItem wraps a Package for use with bubbles/list
type packageItem struct {
	pkg apps.Package
}

// FilterValue matches on the package name.
func (p packageItem) FilterValue() string { return p.pkg.Name }

// Title returns the package name for list display
func (p packageItem) Title() string { return p.pkg.Name }

// Description returns the APK path and whether the package is enabled
func (p packageItem) Description() string {
	state := "enabled"
	if !p.pkg.Enabled {
		state = "disabled"
	}
	if p.pkg.Path == "" {
		return state
	}
	return p.pkg.Path + " • " + state
}
