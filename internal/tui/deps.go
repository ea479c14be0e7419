package tui

import (
	"context"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/config"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
)

// PhoneManager is the adb side of the application. *adb.Client satisfies it.
type PhoneManager interface {
	Devices(ctx context.Context) ([]device.Phone, error)
	ListPackages(ctx context.Context, serial string) ([]apps.Package, error)
	Reboot(ctx context.Context, serial string) error
	Connect(ctx context.Context, address string) error
}

// EndpointScanner finds phones advertising wireless debugging.
type EndpointScanner interface {
	Scan(ctx context.Context) ([]device.WirelessEndpoint, error)
}

// UpdateChecker looks up the latest release. *selfupdate.Checker satisfies it.
type UpdateChecker interface {
	Check(ctx context.Context, running string) (selfupdate.State, error)
}

// UpdateApplier installs a release over the running binary.
type UpdateApplier interface {
	Apply(ctx context.Context, release *selfupdate.Release) error
}

// Options wires the model to its collaborators. Phones is required; a nil
// Scanner disables wireless discovery and a nil Checker disables the startup
// update check.
type Options struct {
	Phones  PhoneManager
	Scanner EndpointScanner
	Checker UpdateChecker
	Applier UpdateApplier

	// Settings is updated in place when the user picks a phone or toggles a
	// preference. Save persists it; nil means changes stay in memory.
	Settings *config.Settings
	Save     func(*config.Settings) error

	// ADB is the adb binary in use, which may come from a flag rather than
	// Settings. Shown on the settings screen.
	ADB string

	// Running is the version shown in the bar and compared against releases.
	Running string
}
