package navbar

import (
	"fmt"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
)

// Texts shown in the bar.
const (
	TextFindingPhones = "finding connected phone..."
	TextNoDevices     = "no devices/emulators found"
	TextUpdating      = "Updating please wait..."
	TextRefreshTip    = "Refresh apps"

	refreshIcon   = "↻"
	buttonPadding = 5
)

// Container layout.
const (
	BarPadding = 10
	BarSpacing = 10
)

// Description is the composed bar.
type Description struct {
	Controls  []Control
	FullWidth bool
	Padding   int
	Spacing   int
	Align     Alignment
}

// Compose builds the bar for the given state. running is the version of the
// running binary. Inputs are not modified.
func Compose(devices []device.Phone, selected *device.Phone, loading apps.LoadingState, update selfupdate.State, running string) Description {
	refresh := Control{
		Kind:        KindButton,
		Role:        RoleRefresh,
		Label:       refreshIcon,
		Tooltip:     TextRefreshTip,
		Event:       Event{Kind: EventRefreshApps},
		Visible:     true,
		Interactive: true,
		Padding:     buttonPadding,
		Style:       StyleRefresh,
	}
	reboot := Control{
		Kind:        KindButton,
		Role:        RoleReboot,
		Label:       "Reboot",
		Event:       Event{Kind: EventRebootDevice},
		Visible:     true,
		Interactive: true,
		Padding:     buttonPadding,
		Style:       StyleRefresh,
	}

	var controls []Control
	if selected != nil {
		picker := Control{
			Kind:        KindPicker,
			Role:        RoleDevicePicker,
			Label:       selected.String(),
			Event:       Event{Kind: EventDeviceSelected, Phone: *selected},
			Visible:     true,
			Interactive: true,
			Options:     append([]device.Phone(nil), devices...),
			Selected:    *selected,
		}
		controls = append(controls, refresh, reboot, picker)
	} else {
		controls = append(controls, reboot, refresh, statusText(loading))
	}

	controls = append(controls,
		Control{Kind: KindSpacer, Role: RoleSpacer, Visible: true},
		versionText(update, running),
		updateButton(update),
		navButton(RoleAppsButton, "Apps", EventGoToApps),
		navButton(RoleAboutButton, "About", EventGoToAbout),
		navButton(RoleSettingsButton, "Settings", EventGoToSettings),
	)

	return Description{
		Controls:  controls,
		FullWidth: true,
		Padding:   BarPadding,
		Spacing:   BarSpacing,
		Align:     AlignCenter,
	}
}

func statusText(loading apps.LoadingState) Control {
	var label string
	switch loading {
	case apps.FindingPhones:
		label = TextFindingPhones
	default:
		label = TextNoDevices
	}
	return Control{Kind: KindText, Role: RoleStatusText, Label: label, Visible: true}
}

func versionText(update selfupdate.State, running string) Control {
	label := running
	if r := update.LatestRelease; r != nil {
		if update.Status == selfupdate.Updating {
			label = TextUpdating
		} else {
			label = fmt.Sprintf("New uad-tui version available %s -> %s", running, r.TagName)
		}
	}
	return Control{Kind: KindText, Role: RoleVersionText, Label: label, Visible: true}
}

func updateButton(update selfupdate.State) Control {
	if update.LatestRelease == nil {
		return Control{Kind: KindButton, Role: RoleUpdateButton, Style: StyleHidden}
	}
	return Control{
		Kind:        KindButton,
		Role:        RoleUpdateButton,
		Label:       "Update",
		Event:       Event{Kind: EventTriggerSelfUpdate},
		Visible:     true,
		Interactive: true,
		Padding:     buttonPadding,
		Style:       StyleSelfUpdate,
	}
}

func navButton(role Role, label string, kind EventKind) Control {
	return Control{
		Kind:        KindButton,
		Role:        role,
		Label:       label,
		Event:       Event{Kind: kind},
		Visible:     true,
		Interactive: true,
		Padding:     buttonPadding,
		Style:       StylePrimary,
	}
}

// Find returns the first control with the given role.
func (d Description) Find(role Role) (Control, bool) {
	for _, c := range d.Controls {
		if c.Role == role {
			return c, true
		}
	}
	return Control{}, false
}

// Picker returns the device picker, present only when a phone is selected.
func (d Description) Picker() (Control, bool) {
	return d.Find(RoleDevicePicker)
}

// Roles lists control roles in display order.
func (d Description) Roles() []Role {
	roles := make([]Role, len(d.Controls))
	for i, c := range d.Controls {
		roles[i] = c.Role
	}
	return roles
}

// Focusable returns the indexes of controls that can be activated, in
// display order.
func (d Description) Focusable() []int {
	var idx []int
	for i, c := range d.Controls {
		if _, ok := c.Activate(); ok {
			idx = append(idx, i)
		}
	}
	return idx
}
