package navbar

import (
	"fmt"

	"github.com/uad-ng/uad-tui/internal/device"
)

// Kind is the widget type a renderer should draw.
type Kind int

const (
	KindButton Kind = iota
	KindText
	KindPicker
	KindSpacer
)

// Role identifies a control independent of its label.
type Role int

const (
	RoleRefresh Role = iota
	RoleReboot
	RoleDevicePicker
	RoleStatusText
	RoleSpacer
	RoleVersionText
	RoleUpdateButton
	RoleAppsButton
	RoleAboutButton
	RoleSettingsButton
)

var roleNames = map[Role]string{
	RoleRefresh:        "refresh",
	RoleReboot:         "reboot",
	RoleDevicePicker:   "device-picker",
	RoleStatusText:     "status-text",
	RoleSpacer:         "spacer",
	RoleVersionText:    "version-text",
	RoleUpdateButton:   "update-button",
	RoleAppsButton:     "apps-button",
	RoleAboutButton:    "about-button",
	RoleSettingsButton: "settings-button",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Style is a semantic style hint. Renderers map it to colours.
type Style int

const (
	StylePlain Style = iota
	StyleRefresh
	StyleSelfUpdate
	StylePrimary
	StyleHidden
)

// Alignment is the cross-axis alignment of the bar.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// Control describes one element of the bar.
type Control struct {
	Kind    Kind
	Role    Role
	Label   string
	Tooltip string

	// Event is emitted when the control is activated. Non-interactive
	// controls carry EventNone.
	Event Event

	// Visible is false for placeholders that keep their slot in the layout
	// without being drawn.
	Visible     bool
	Interactive bool
	Padding     int
	Style       Style

	// Options and Selected are set for pickers only.
	Options  []device.Phone
	Selected device.Phone
}

// Activate returns the event the control emits, and false for controls that
// cannot be activated.
func (c Control) Activate() (Event, bool) {
	if !c.Interactive || !c.Visible || c.Event.Kind == EventNone {
		return Event{}, false
	}
	return c.Event, true
}

// Choose returns the event a picker emits when p is picked.
func (c Control) Choose(p device.Phone) Event {
	return Event{Kind: EventDeviceSelected, Phone: p}
}

// Next returns the option after the selected one, wrapping around. An
// orphan selection moves to the first option.
func (c Control) Next() (device.Phone, bool) {
	return c.step(1)
}

// Prev returns the option before the selected one, wrapping around.
func (c Control) Prev() (device.Phone, bool) {
	return c.step(-1)
}

func (c Control) step(delta int) (device.Phone, bool) {
	n := len(c.Options)
	if c.Kind != KindPicker || n == 0 {
		return device.Phone{}, false
	}
	for i, p := range c.Options {
		if p.Equal(c.Selected) {
			return c.Options[((i+delta)%n+n)%n], true
		}
	}
	return c.Options[0], true
}
