// Package logging provides structured logging for uad-tui.
//
// It wraps a package-level zap logger. Logging is silent unless a level is
// given explicitly or through UADTUI_LOG_LEVEL, because the interactive TUI
// owns the terminal and stray log lines would corrupt the screen. Without a
// file, entries go to stderr; the TUI refuses to start in that case, so point
// output at a file with --log-file or UADTUI_LOG_FILE.
//
// # Levels
//
//   - Debug: raw adb output, every navigation event
//   - Info: device scans, selections, reboots, update checks
//   - Warn: recoverable failures (scan errors, failed update checks)
//   - Error: failures surfaced to the user
//
// # Usage
//
//	if err := logging.Initialize("debug", "/tmp/uad-tui.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.LogDeviceEvent("R58N123ABC", "selected")
//
// All functions are safe for concurrent use.
package logging
