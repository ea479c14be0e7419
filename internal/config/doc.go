// Package config stores uad-tui preferences on disk.
//
// Settings live in a YAML file at the platform's configuration location:
//   - Linux: $XDG_CONFIG_HOME/uad-tui/config.yaml or $HOME/.config/uad-tui/config.yaml
//   - macOS: $HOME/.config/uad-tui/config.yaml
//   - Windows: %LOCALAPPDATA%\uad-tui\config.yaml
//
// Besides preferences the file remembers phones by serial (nickname, last
// seen) and the last selected phone, so a refresh can restore the selection.
//
// Writes are atomic (temp file + rename) and serialised by a mutex.
package config
