package config

import (
	"time"
)

// CurrentVersion is the only settings file version this build understands.
const CurrentVersion = 1

// Settings is the whole configuration file.
type Settings struct {
	Version     int                `yaml:"version"`
	Preferences *Preferences       `yaml:"preferences,omitempty"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // keyed by adb serial
}

// Preferences are application-wide options. Command-line flags override them
// for a single run.
type Preferences struct {
	CheckForUpdates   bool   `yaml:"check_for_updates"`     // query GitHub releases on startup
	WirelessDiscovery bool   `yaml:"wireless_discovery"`    // browse mDNS for wireless-debugging phones
	DiscoverTimeout   int    `yaml:"discover_timeout"`      // mDNS browse time in seconds
	ADBPath           string `yaml:"adb_path,omitempty"`    // empty means "adb" from PATH
	LastDevice        string `yaml:"last_device,omitempty"` // serial selected when the app last ran
	UpdateRepo        string `yaml:"update_repo,omitempty"` // owner/name of the release repository
}

// Device is what we remember about a phone between runs.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`
	Model    string    `yaml:"model,omitempty"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// DefaultUpdateRepo is where release builds are published.
const DefaultUpdateRepo = "uad-ng/uad-tui"

// DefaultPreferences returns the preferences used when the file is missing
// or has no preferences section.
func DefaultPreferences() *Preferences {
	return &Preferences{
		CheckForUpdates:   true,
		WirelessDiscovery: false,
		DiscoverTimeout:   5,
		UpdateRepo:        DefaultUpdateRepo,
	}
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:     CurrentVersion,
		Preferences: DefaultPreferences(),
		Devices:     make(map[string]*Device),
	}
}

// DiscoverDuration returns the mDNS browse time, never less than one second.
func (p *Preferences) DiscoverDuration() time.Duration {
	if p == nil || p.DiscoverTimeout < 1 {
		return time.Second
	}
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// ADB returns the adb binary to run.
func (p *Preferences) ADB() string {
	if p == nil || p.ADBPath == "" {
		return "adb"
	}
	return p.ADBPath
}

// GetDevice returns what is remembered about serial, or nil.
func (s *Settings) GetDevice(serial string) *Device {
	return s.Devices[serial]
}

// EnsureDevice returns the entry for serial, creating it if needed.
func (s *Settings) EnsureDevice(serial string) *Device {
	if s.Devices == nil {
		s.Devices = make(map[string]*Device)
	}
	if d, ok := s.Devices[serial]; ok {
		return d
	}
	d := &Device{}
	s.Devices[serial] = d
	return d
}

// RememberDevice records that serial was seen now, and its model.
func (s *Settings) RememberDevice(serial, model string) {
	d := s.EnsureDevice(serial)
	d.LastSeen = time.Now()
	if model != "" {
		d.Model = model
	}
}

// SetNickname sets a user-friendly name for a phone.
func (s *Settings) SetNickname(serial, nickname string) {
	s.EnsureDevice(serial).Nickname = nickname
}

// SelectDevice remembers serial as the last selected phone.
func (s *Settings) SelectDevice(serial string) {
	if s.Preferences == nil {
		s.Preferences = DefaultPreferences()
	}
	s.Preferences.LastDevice = serial
}
