package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/logging"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
)

// Messages for async operations
type devicesMsg struct {
	phones []device.Phone
	err    error
}

type packagesMsg struct {
	serial   string
	packages []apps.Package
	err      error
}

type rebootMsg struct {
	phone device.Phone
	err   error
}

type updateCheckMsg struct {
	state selfupdate.State
	err   error
}

type updateAppliedMsg struct {
	err error
}

const (
	adbTimeout    = 30 * time.Second
	updateTimeout = 5 * time.Minute
)

// findPhones connects any wireless-debugging endpoints the scanner finds, then
// lists the phones adb knows about.
func findPhones(phones PhoneManager, scanner EndpointScanner) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
		defer cancel()

		if scanner != nil {
			endpoints, err := scanner.Scan(ctx)
			if err != nil {
				logging.Warn("wireless discovery failed", zap.Error(err))
			}
			for _, ep := range endpoints {
				if err := phones.Connect(ctx, ep.Address); err != nil {
					logging.Warn("adb connect failed",
						zap.String("address", ep.Address),
						zap.Error(err))
				}
			}
		}

		found, err := phones.Devices(ctx)
		return devicesMsg{phones: found, err: err}
	}
}

func loadPackages(phones PhoneManager, serial string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
		defer cancel()
		pkgs, err := phones.ListPackages(ctx, serial)
		return packagesMsg{serial: serial, packages: pkgs, err: err}
	}
}

func rebootPhone(phones PhoneManager, phone device.Phone) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
		defer cancel()
		return rebootMsg{phone: phone, err: phones.Reboot(ctx, phone.Serial)}
	}
}

func checkForUpdate(checker UpdateChecker, running string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
		defer cancel()
		state, err := checker.Check(ctx, running)
		return updateCheckMsg{state: state, err: err}
	}
}

func applyUpdate(applier UpdateApplier, release *selfupdate.Release) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
		defer cancel()
		return updateAppliedMsg{err: applier.Apply(ctx, release)}
	}
}
