package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/config"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/logging"
	"github.com/uad-ng/uad-tui/internal/navbar"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
)

type fakePhones struct {
	mu         sync.Mutex
	phones     []device.Phone
	packages   map[string][]apps.Package
	devicesErr error
	rebooted   []string
	connected  []string
}

func (f *fakePhones) Devices(ctx context.Context) ([]device.Phone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]device.Phone(nil), f.phones...), f.devicesErr
}

func (f *fakePhones) ListPackages(ctx context.Context, serial string) ([]apps.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pkgs, ok := f.packages[serial]
	if !ok {
		return nil, errors.New("device not found")
	}
	return pkgs, nil
}

func (f *fakePhones) Reboot(ctx context.Context, serial string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebooted = append(f.rebooted, serial)
	return nil
}

func (f *fakePhones) Connect(ctx context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = append(f.connected, address)
	return nil
}

type fakeScanner struct {
	endpoints []device.WirelessEndpoint
}

func (s fakeScanner) Scan(ctx context.Context) ([]device.WirelessEndpoint, error) {
	return s.endpoints, nil
}

type fakeApplier struct {
	err     error
	applied []string
}

func (a *fakeApplier) Apply(ctx context.Context, release *selfupdate.Release) error {
	a.applied = append(a.applied, release.TagName)
	return a.err
}

var (
	pixel  = device.Phone{Serial: "1A2B3C", State: device.StateDevice, Model: "Pixel 7"}
	galaxy = device.Phone{Serial: "R58N123ABC", State: device.StateDevice, Model: "SM G991B"}
)

func newFakePhones() *fakePhones {
	return &fakePhones{
		phones: []device.Phone{pixel, galaxy},
		packages: map[string][]apps.Package{
			pixel.Serial: {
				{Name: "com.google.android.youtube", Path: "/product/app/YouTube/YouTube.apk", Enabled: true},
				{Name: "com.android.chrome", Path: "/product/app/Chrome/Chrome.apk", Enabled: true},
			},
			galaxy.Serial: {
				{Name: "com.samsung.android.bixby.agent", Enabled: false},
			},
		},
	}
}

func newTestModel(phones *fakePhones) Model {
	return New(Options{Phones: phones, Running: "v1.3.0"})
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ready drives the model through the initial phone search and package load.
func ready(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := step(t, m, findPhones(m.opts.Phones, m.opts.Scanner)())
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())
	require.Equal(t, apps.Ready, m.list.State)
	return m
}

func TestNew_StartsFindingPhones(t *testing.T) {
	m := newTestModel(newFakePhones())

	assert.Equal(t, apps.FindingPhones, m.list.State)
	assert.Equal(t, ScreenApps, m.screen)

	status, ok := m.Description().Find(navbar.RoleStatusText)
	require.True(t, ok)
	assert.Equal(t, navbar.TextFindingPhones, status.Label)
}

func TestDevices_SelectsFirstPhoneAndLoadsPackages(t *testing.T) {
	m := newTestModel(newFakePhones())

	m, cmd := step(t, m, devicesMsg{phones: []device.Phone{pixel, galaxy}})
	require.NotNil(t, m.selected)
	assert.Equal(t, pixel.Serial, m.selected.Serial)
	assert.Equal(t, apps.LoadingPackages, m.list.State)
	require.NotNil(t, cmd)

	msg, ok := cmd().(packagesMsg)
	require.True(t, ok)
	assert.Equal(t, pixel.Serial, msg.serial)

	m, _ = step(t, m, msg)
	assert.Equal(t, apps.Ready, m.list.State)
	require.Len(t, m.list.Packages, 2)
	assert.Equal(t, "com.android.chrome", m.list.Packages[0].Name)
	assert.Len(t, m.packages.Items(), 2)

	picker, ok := m.Description().Picker()
	require.True(t, ok)
	assert.Equal(t, "Pixel 7 (1A2B3C)", picker.Label)
	assert.Len(t, picker.Options, 2)
}

func TestDevices_OfflinePhonesAreNotOffered(t *testing.T) {
	m := newTestModel(newFakePhones())
	offline := device.Phone{Serial: "emulator-5554", State: device.StateOffline}

	m, _ = step(t, m, devicesMsg{phones: []device.Phone{offline, galaxy}})

	require.NotNil(t, m.selected)
	assert.Equal(t, galaxy.Serial, m.selected.Serial)
	assert.Equal(t, []device.Phone{galaxy}, m.devices)
}

func TestDevices_RestoresLastDevice(t *testing.T) {
	settings := config.NewSettings()
	settings.Preferences.LastDevice = galaxy.Serial
	saved := 0

	m := New(Options{
		Phones:   newFakePhones(),
		Settings: settings,
		Save:     func(*config.Settings) error { saved++; return nil },
		Running:  "v1.3.0",
	})

	m, _ = step(t, m, devicesMsg{phones: []device.Phone{pixel, galaxy}})

	require.NotNil(t, m.selected)
	assert.Equal(t, galaxy.Serial, m.selected.Serial)
	assert.Equal(t, 1, saved)
	require.NotNil(t, settings.GetDevice(galaxy.Serial))
	assert.Equal(t, "SM G991B", settings.GetDevice(galaxy.Serial).Model)
}

func TestDevices_KeepsSelectionAndOrderOnRefresh(t *testing.T) {
	m := ready(t, newTestModel(newFakePhones()))
	m, _ = m.selectPhone(galaxy)

	// adb lists phones in a different order this time
	m, _ = step(t, m, devicesMsg{phones: []device.Phone{galaxy, pixel}})

	assert.Equal(t, galaxy.Serial, m.selected.Serial)
	assert.Equal(t, []device.Phone{pixel, galaxy}, m.devices)
}

func TestDevices_NoneFound(t *testing.T) {
	m := newTestModel(newFakePhones())

	m, cmd := step(t, m, devicesMsg{})

	assert.Nil(t, cmd)
	assert.Nil(t, m.selected)
	assert.Equal(t, apps.Ready, m.list.State)

	d := m.Description()
	_, hasPicker := d.Picker()
	assert.False(t, hasPicker)
	status, ok := d.Find(navbar.RoleStatusText)
	require.True(t, ok)
	assert.Equal(t, navbar.TextNoDevices, status.Label)
	assert.Contains(t, m.View(), navbar.TextNoDevices)
}

func TestDevices_Error(t *testing.T) {
	m := newTestModel(newFakePhones())

	m, _ = step(t, m, devicesMsg{err: errors.New("adb not found")})

	assert.Equal(t, apps.Failed, m.list.State)
	assert.Nil(t, m.selected)
	assert.Equal(t, "adb not found", m.notice)
	assert.Contains(t, m.View(), "adb not found")
}

func TestFindPhones_ConnectsWirelessEndpoints(t *testing.T) {
	phones := newFakePhones()
	scanner := fakeScanner{endpoints: []device.WirelessEndpoint{
		{Instance: "adb-R58N123ABC-Xk3b9Q", Serial: "R58N123ABC", Address: "192.168.1.20:37815"},
	}}

	msg := findPhones(phones, scanner)()

	dm, ok := msg.(devicesMsg)
	require.True(t, ok)
	assert.Len(t, dm.phones, 2)
	assert.Equal(t, []string{"192.168.1.20:37815"}, phones.connected)
}

func TestPackages_StaleReplyIgnored(t *testing.T) {
	m := newTestModel(newFakePhones())
	m, _ = step(t, m, devicesMsg{phones: []device.Phone{pixel, galaxy}})

	m, _ = step(t, m, packagesMsg{serial: galaxy.Serial, packages: []apps.Package{{Name: "x"}}})

	assert.Equal(t, apps.LoadingPackages, m.list.State)
	assert.Empty(t, m.list.Packages)
}

func TestPackages_Error(t *testing.T) {
	m := newTestModel(newFakePhones())
	m, _ = step(t, m, devicesMsg{phones: []device.Phone{pixel}})

	m, _ = step(t, m, packagesMsg{serial: pixel.Serial, err: errors.New("device offline")})

	assert.Equal(t, apps.Failed, m.list.State)
	assert.Contains(t, m.View(), "Could not read from the phone")
}

func TestDispatch_RefreshApps(t *testing.T) {
	m := ready(t, newTestModel(newFakePhones()))

	m, cmd := m.Dispatch(navbar.Event{Kind: navbar.EventRefreshApps})

	assert.Equal(t, apps.FindingPhones, m.list.State)
	require.NotNil(t, cmd)
	_, ok := cmd().(devicesMsg)
	assert.True(t, ok)
}

func TestDispatch_RebootDevice(t *testing.T) {
	phones := newFakePhones()
	m := ready(t, newTestModel(phones))

	m, cmd := m.Dispatch(navbar.Event{Kind: navbar.EventRebootDevice})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, []string{pixel.Serial}, phones.rebooted)

	m, cmd = step(t, m, msg)
	assert.Equal(t, "Rebooting Pixel 7 (1A2B3C)", m.notice)
	assert.Equal(t, apps.FindingPhones, m.list.State)
	assert.NotNil(t, cmd)
}

func TestReboot_DeviceEventLoggedByClientOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(nil) })

	m := ready(t, newTestModel(newFakePhones()))
	logs.TakeAll()

	_, _ = step(t, m, rebootMsg{phone: pixel})

	assert.Zero(t, logs.FilterMessage("Device event").Len())
}

func TestDispatch_RebootWithoutPhone(t *testing.T) {
	m := newTestModel(newFakePhones())
	m, _ = step(t, m, devicesMsg{})

	m, cmd := m.Dispatch(navbar.Event{Kind: navbar.EventRebootDevice})

	assert.Nil(t, cmd)
	assert.Equal(t, "No phone selected", m.notice)
}

func TestDispatch_Screens(t *testing.T) {
	m := newTestModel(newFakePhones())

	tests := []struct {
		kind navbar.EventKind
		want Screen
	}{
		{navbar.EventGoToAbout, ScreenAbout},
		{navbar.EventGoToSettings, ScreenSettings},
		{navbar.EventGoToApps, ScreenApps},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			next, cmd := m.Dispatch(navbar.Event{Kind: tt.kind})
			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, next.screen)
		})
	}
}

func TestDispatch_UnknownEventIsIgnored(t *testing.T) {
	m := newTestModel(newFakePhones())

	next, cmd := m.Dispatch(navbar.Event{Kind: navbar.EventKind(99)})

	assert.Nil(t, cmd)
	assert.Equal(t, m.screen, next.screen)
	assert.Equal(t, m.list.State, next.list.State)
}

func TestSelfUpdate(t *testing.T) {
	applier := &fakeApplier{}
	m := New(Options{Phones: newFakePhones(), Applier: applier, Running: "v1.3.0"})
	m = ready(t, m)

	// Nothing to update yet: the shortcut hits the hidden placeholder.
	m, cmd := step(t, m, runes("u"))
	assert.Nil(t, cmd)
	assert.Empty(t, applier.applied)

	release := &selfupdate.Release{TagName: "v1.4.0"}
	m, _ = step(t, m, updateCheckMsg{state: selfupdate.State{LatestRelease: release, Status: selfupdate.Available}})
	version, _ := m.Description().Find(navbar.RoleVersionText)
	assert.Equal(t, "New uad-tui version available v1.3.0 -> v1.4.0", version.Label)

	m, cmd = step(t, m, runes("u"))
	require.NotNil(t, cmd)
	assert.Equal(t, selfupdate.Updating, m.update.Status)
	version, _ = m.Description().Find(navbar.RoleVersionText)
	assert.Equal(t, navbar.TextUpdating, version.Label)

	m, _ = step(t, m, cmd())
	assert.Equal(t, []string{"v1.4.0"}, applier.applied)
	assert.Equal(t, selfupdate.Updated, m.update.Status)
	assert.Nil(t, m.update.LatestRelease)

	button, _ := m.Description().Find(navbar.RoleUpdateButton)
	assert.False(t, button.Visible)
}

func TestSelfUpdate_SecondTriggerWhileUpdatingIsIgnored(t *testing.T) {
	applier := &fakeApplier{}
	m := New(Options{Phones: newFakePhones(), Applier: applier, Running: "v1.3.0"})
	m.update = selfupdate.State{LatestRelease: &selfupdate.Release{TagName: "v1.4.0"}, Status: selfupdate.Available}

	m, first := step(t, m, runes("u"))
	require.NotNil(t, first)
	require.Equal(t, selfupdate.Updating, m.update.Status)

	// The button stays on the bar while the download runs.
	button, _ := m.Description().Find(navbar.RoleUpdateButton)
	require.True(t, button.Visible)

	m, second := step(t, m, runes("u"))
	assert.Nil(t, second)

	first()
	assert.Len(t, applier.applied, 1)
	assert.Equal(t, selfupdate.Updating, m.update.Status)
}

func TestSelfUpdate_Failure(t *testing.T) {
	applier := &fakeApplier{err: errors.New("no asset for plan9/arm")}
	m := New(Options{Phones: newFakePhones(), Applier: applier, Running: "v1.3.0"})
	m.update = selfupdate.State{LatestRelease: &selfupdate.Release{TagName: "v1.4.0"}, Status: selfupdate.Available}

	m, cmd := m.Dispatch(navbar.Event{Kind: navbar.EventTriggerSelfUpdate})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, selfupdate.Failed, m.update.Status)
	assert.NotNil(t, m.update.LatestRelease)
	assert.Contains(t, m.notice, "no asset for plan9/arm")
}

func TestUpdateCheckFailureKeepsBarQuiet(t *testing.T) {
	m := newTestModel(newFakePhones())

	m, _ = step(t, m, updateCheckMsg{err: errors.New("rate limited")})

	assert.Equal(t, selfupdate.Failed, m.update.Status)
	version, _ := m.Description().Find(navbar.RoleVersionText)
	assert.Equal(t, "v1.3.0", version.Label)
}

func TestKeys_FocusAndActivate(t *testing.T) {
	phones := newFakePhones()
	m := ready(t, newTestModel(phones))

	d := m.Description()
	assert.Equal(t, navbar.RoleRefresh, d.Controls[m.focusIndex(d)].Role)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, navbar.RoleReboot, m.focus)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{pixel.Serial}, phones.rebooted)

	// Wraps from the first control to Settings.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, navbar.RoleSettingsButton, m.focus)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenSettings, m.screen)
}

func TestKeys_FocusFallsBackWhenBarChanges(t *testing.T) {
	m := ready(t, newTestModel(newFakePhones()))
	m.focus = navbar.RoleDevicePicker

	m, _ = step(t, m, devicesMsg{})

	d := m.Description()
	assert.Equal(t, navbar.RoleReboot, d.Controls[m.focusIndex(d)].Role)
}

func TestKeys_CyclePicker(t *testing.T) {
	m := ready(t, newTestModel(newFakePhones()))

	m, cmd := step(t, m, runes("]"))
	require.NotNil(t, cmd)
	assert.Equal(t, galaxy.Serial, m.selected.Serial)
	msg := cmd().(packagesMsg)
	assert.Equal(t, galaxy.Serial, msg.serial)

	m, _ = step(t, m, runes("]"))
	assert.Equal(t, pixel.Serial, m.selected.Serial)

	m, _ = step(t, m, runes("["))
	assert.Equal(t, galaxy.Serial, m.selected.Serial)
}

func TestKeys_PickerWithoutPhones(t *testing.T) {
	m := newTestModel(newFakePhones())
	m, _ = step(t, m, devicesMsg{})

	_, cmd := step(t, m, runes("]"))

	assert.Nil(t, cmd)
}

func TestKeys_SettingsToggles(t *testing.T) {
	settings := config.NewSettings()
	saved := 0
	m := New(Options{
		Phones:   newFakePhones(),
		Settings: settings,
		Save:     func(*config.Settings) error { saved++; return nil },
		Running:  "v1.3.0",
	})

	m, _ = step(t, m, runes("s"))
	require.Equal(t, ScreenSettings, m.screen)
	assert.Contains(t, m.View(), "Wireless")

	m, _ = step(t, m, runes("w"))
	assert.True(t, settings.Preferences.WirelessDiscovery)
	m, _ = step(t, m, runes("c"))
	assert.False(t, settings.Preferences.CheckForUpdates)
	assert.Equal(t, 2, saved)
}

func TestKeys_SaveFailureIsReported(t *testing.T) {
	settings := config.NewSettings()
	m := New(Options{
		Phones:   newFakePhones(),
		Settings: settings,
		Save:     func(*config.Settings) error { return errors.New("read-only file system") },
		Running:  "v1.3.0",
	})

	m, _ = step(t, m, runes("s"))
	m, _ = step(t, m, runes("w"))

	assert.Contains(t, m.notice, "read-only file system")
}

func TestKeys_Quit(t *testing.T) {
	m := newTestModel(newFakePhones())

	_, cmd := step(t, m, runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_About(t *testing.T) {
	m := New(Options{Phones: newFakePhones(), Settings: config.NewSettings(), Running: "v1.3.0"})

	m, _ = step(t, m, runes("o"))
	out := m.View()

	assert.Contains(t, out, "v1.3.0")
	assert.Contains(t, out, "https://github.com/uad-ng/uad-tui/releases")
}
