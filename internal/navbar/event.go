package navbar

import (
	"fmt"

	"github.com/uad-ng/uad-tui/internal/device"
)

// EventKind is what the host should do when a control is activated.
type EventKind int

const (
	EventNone EventKind = iota
	EventRefreshApps
	EventRebootDevice
	EventDeviceSelected
	EventTriggerSelfUpdate
	EventGoToApps
	EventGoToAbout
	EventGoToSettings
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventRefreshApps:
		return "refresh-apps"
	case EventRebootDevice:
		return "reboot-device"
	case EventDeviceSelected:
		return "device-selected"
	case EventTriggerSelfUpdate:
		return "trigger-self-update"
	case EventGoToApps:
		return "go-to-apps"
	case EventGoToAbout:
		return "go-to-about"
	case EventGoToSettings:
		return "go-to-settings"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is emitted by an activated control. Phone is set only for
// EventDeviceSelected.
type Event struct {
	Kind  EventKind
	Phone device.Phone
}

func (e Event) String() string {
	if e.Kind == EventDeviceSelected {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Phone.Serial)
	}
	return e.Kind.String()
}
