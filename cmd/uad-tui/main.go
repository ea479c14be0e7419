// Uad-tui is a terminal front-end for managing Android phones over adb.
//
// Running without arguments opens the interactive application: a
// navigation bar with the connected phones, the selected phone's packages,
// and the about and settings screens. The sub-commands offer one-shot
// operations for scripts.
//
// Prerequisites:
//
//   - adb (Android platform-tools) installed and in PATH, or set with --adb
//   - USB debugging enabled on the phone, or wireless debugging with
//     --wireless / the wireless_discovery preference
//
// See 'uad-tui --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uad-ng/uad-tui/internal/logging"
	"github.com/uad-ng/uad-tui/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uad-tui",
	Short: "Universal Android Debloater terminal UI",
	Long: `A terminal front-end for Android phones connected over adb.

Lists the connected phones and the packages installed on the selected one,
reboots phones, and keeps itself up to date from GitHub releases.

If no command is specified, the interactive application is started.`,
	Version: version.Version,
	Example: `  # Start the interactive application
  uad-tui

  # Use a specific adb binary and log to a file
  uad-tui --adb ~/platform-tools/adb --log-level debug --log-file /tmp/uad-tui.log

  # List connected phones
  uad-tui devices`,
	PersistentPreRunE: setup,
	RunE:              runApp,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("uad-tui %s\n", version.Full())
	},
}
