package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/uad-ng/uad-tui/internal/adb"
	"github.com/uad-ng/uad-tui/internal/config"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/logging"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
	"github.com/uad-ng/uad-tui/internal/tui"
	"github.com/uad-ng/uad-tui/internal/version"
)

// errSettingsReadOnly is returned by save when the settings were not loaded
// from a file at startup.
var errSettingsReadOnly = errors.New("settings were not loaded from the config file; not overwriting it")

// session is the configuration of one run. settings mirrors the file and is
// the only thing ever saved; flag overrides live beside it.
type session struct {
	settings *config.Settings
	path     string

	// persist is false when the file exists but could not be loaded, or its
	// location is unknown.
	persist bool

	adb      string
	wireless bool
}

// loadSession reads settings from path and applies the global flags.
func loadSession(path string) *session {
	s := &session{path: path, persist: path != ""}

	var (
		st  *config.Settings
		err error
	)
	if path == "" {
		st = config.NewSettings()
	} else {
		st, err = config.LoadFrom(path)
	}
	if err != nil {
		logging.Warn("using default settings, changes will not be saved",
			zap.String("path", path),
			zap.Error(err))
		st = config.NewSettings()
		s.persist = false
	}
	s.settings = st

	s.adb = st.Preferences.ADB()
	if adbPath != "" {
		s.adb = adbPath
	}
	s.wireless = st.Preferences.WirelessDiscovery || wireless
	return s
}

func (s *session) save(st *config.Settings) error {
	if !s.persist {
		return errSettingsReadOnly
	}
	return st.SaveTo(s.path)
}

func (s *session) adbClient() *adb.Client {
	return adb.NewClient(s.adb, logging.GetLogger())
}

func (s *session) scanner() *device.Scanner {
	if !s.wireless {
		return nil
	}
	sc := device.NewScanner()
	sc.Timeout = s.settings.Preferences.DiscoverDuration()
	return sc
}

// appOptions wires the interactive application to this session.
func (s *session) appOptions() tui.Options {
	logger := logging.GetLogger()
	opts := tui.Options{
		Phones:   s.adbClient(),
		Applier:  selfupdate.NewUpdater(logger),
		Settings: s.settings,
		ADB:      s.adb,
		Running:  version.Version,
	}
	if s.persist {
		opts.Save = s.save
	}
	// A nil *device.Scanner must not end up as a non-nil interface.
	if sc := s.scanner(); sc != nil {
		opts.Scanner = sc
	}
	if s.settings.Preferences.CheckForUpdates && !noUpdateCheck {
		opts.Checker = selfupdate.NewChecker(s.settings.Preferences.UpdateRepo, logger)
	}
	return opts
}

// checkLogOutput refuses to start the interactive application when log
// entries would be written to the terminal it draws on.
func checkLogOutput() error {
	if logging.Output() == logging.Stderr {
		return fmt.Errorf("--log-level needs --log-file (or %s) while the interactive app is running", logging.LogFileEnvVar)
	}
	return nil
}
