package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uad-ng/uad-tui/internal/config"
	"github.com/uad-ng/uad-tui/internal/logging"
	"github.com/uad-ng/uad-tui/internal/selfupdate"
	"github.com/uad-ng/uad-tui/internal/tui"
	"github.com/uad-ng/uad-tui/internal/ui"
	"github.com/uad-ng/uad-tui/internal/urls"
	"github.com/uad-ng/uad-tui/internal/version"
)

// Global flags
var (
	adbPath       string
	logLevel      string
	logFile       string
	noUpdateCheck bool
	wireless      bool
	assumeYes     bool
)

// sess is loaded once per run by setup.
var sess *session

const commandTimeout = 30 * time.Second

func init() {
	rootCmd.PersistentFlags().StringVar(&adbPath, "adb", "", "Path to the adb binary (default: adb from PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logging is off by default")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&noUpdateCheck, "no-update-check", false, "Do not look for a newer uad-tui release")
	rootCmd.PersistentFlags().BoolVar(&wireless, "wireless", false, "Discover phones with wireless debugging over mDNS")

	rebootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Reboot without asking for confirmation")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(checkUpdateCmd)
	rootCmd.AddCommand(rebootCmd)
	rootCmd.AddCommand(nicknameCmd)
}

// setup initialises logging and loads the settings file. Flags override the
// stored preferences for this run only.
func setup(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel, logFile); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		logging.Warn("no config directory", zap.Error(err))
		path = ""
	}
	sess = loadSession(path)

	logging.Debug("starting",
		zap.String("version", version.Version),
		zap.String("command", cmd.Name()),
		zap.String("adb", sess.adb))
	return nil
}

func isInteractive() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

func runApp(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return errors.New("uad-tui needs a terminal; use 'uad-tui devices' for scripted output")
	}

	if err := checkLogOutput(); err != nil {
		return err
	}
	return tui.Run(sess.appOptions())
}

// devicesCmd lists connected phones
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected phones",
	Long: `List the phones adb can see, including ones that are offline or
waiting for USB debugging authorisation.

With --wireless, phones advertising wireless debugging on the local network
are connected first.`,
	Example: `  # List phones connected over USB
  uad-tui devices

  # Also find phones with wireless debugging enabled
  uad-tui devices --wireless`,
	RunE: runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader(ui.NewHeader("Connected phones", "uad-tui devices",
		ui.Field{Key: "adb", Value: sess.adb},
		ui.Field{Key: "Wireless", Value: fmt.Sprintf("%t", sess.wireless)},
	))

	client := sess.adbClient()
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout+sess.settings.Preferences.DiscoverDuration())
	defer cancel()

	if sc := sess.scanner(); sc != nil {
		endpoints, err := sc.Scan(ctx)
		if err != nil {
			logging.Warn("wireless discovery failed", zap.Error(err))
		}
		for _, ep := range endpoints {
			if err := client.Connect(ctx, ep.Address); err != nil {
				p.PrintResult(ui.NewWarningResult("Could not connect",
					ui.Field{Key: "Address", Value: ep.Address},
					ui.Field{Key: "Error", Value: err.Error()},
					ui.Field{Key: "Guide", Value: urls.WirelessDebugging}))
			}
		}
	}

	phones, err := client.Devices(ctx)
	if err != nil {
		p.PrintResult(ui.NewFailureResult("Could not list phones", err,
			"Check that adb is installed or pass --adb",
			"Run 'adb kill-server' if the adb server is stuck"))
		return err
	}

	if len(phones) == 0 {
		p.PrintResult(ui.NewWarningResult("No phones found",
			ui.Field{Key: "Hint", Value: "enable USB debugging and accept the prompt on the phone"},
			ui.Field{Key: "Guide", Value: urls.USBDebugging}))
		return nil
	}

	for _, ph := range phones {
		details := []ui.Field{
			{Key: "Serial", Value: ph.Serial},
			{Key: "State", Value: ph.State},
		}
		if ph.Product != "" {
			details = append(details, ui.Field{Key: "Product", Value: ph.Product})
		}
		switch {
		case ph.Emulator():
			details = append(details, ui.Field{Key: "Transport", Value: "emulator"})
		case ph.Wireless():
			details = append(details, ui.Field{Key: "Transport", Value: "wireless"})
		}
		if d := sess.settings.GetDevice(ph.Serial); d != nil && d.Nickname != "" {
			details = append(details, ui.Field{Key: "Nickname", Value: d.Nickname})
		}
		if ph.Online() {
			p.PrintResult(ui.NewSuccessResult(ph.String(), details...))
		} else {
			p.PrintResult(ui.NewWarningResult(ph.String(), details...))
		}
	}
	return nil
}

// checkUpdateCmd looks for a newer release
var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check for a newer uad-tui release",
	RunE:  runCheckUpdate,
}

func runCheckUpdate(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader(ui.NewHeader("Update check", "uad-tui check-update",
		ui.Field{Key: "Running", Value: version.Version},
		ui.Field{Key: "Repository", Value: sess.settings.Preferences.UpdateRepo},
	))

	checker := selfupdate.NewChecker(sess.settings.Preferences.UpdateRepo, logging.GetLogger())
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	state, err := checker.Check(ctx, version.Version)
	if err != nil {
		p.PrintResult(ui.NewFailureResult("Update check failed", err,
			"Check your network connection",
			"GitHub limits unauthenticated API requests; try again later"))
		return err
	}

	if state.LatestRelease == nil {
		p.PrintResult(ui.NewSuccessResult("uad-tui is up to date",
			ui.Field{Key: "Version", Value: version.Version}))
		return nil
	}

	r := ui.NewWarningResult("New version available",
		ui.Field{Key: "Running", Value: version.Version},
		ui.Field{Key: "Latest", Value: state.LatestRelease.TagName},
	)
	download := state.LatestRelease.HTMLURL
	if download == "" {
		download = urls.Releases(sess.settings.Preferences.UpdateRepo)
	}
	r.AddDetail("Download", download)
	p.PrintResult(r)
	return nil
}

// rebootCmd reboots a phone
var rebootCmd = &cobra.Command{
	Use:   "reboot <serial>",
	Short: "Reboot a phone",
	Example: `  # Reboot with confirmation
  uad-tui reboot R58N123ABC

  # Reboot without asking
  uad-tui reboot R58N123ABC --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runReboot,
}

func runReboot(cmd *cobra.Command, args []string) error {
	serial := args[0]

	if !assumeYes && isInteractive() {
		var proceed bool
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Reboot %s?", serial)).
					Affirmative("Yes").
					Negative("No").
					Value(&proceed),
			),
		).Run()
		if err != nil || !proceed {
			fmt.Fprintln(cmd.OutOrStdout(), "Reboot cancelled.")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	p := ui.NewPrinter(cmd.OutOrStdout())
	if err := sess.adbClient().Reboot(ctx, serial); err != nil {
		p.PrintResult(ui.NewFailureResult("Reboot failed", err,
			"Run 'uad-tui devices' to check the serial"))
		return err
	}
	p.PrintResult(ui.NewSuccessResult("Rebooting", ui.Field{Key: "Serial", Value: serial}))
	return nil
}

// nicknameCmd names a phone
var nicknameCmd = &cobra.Command{
	Use:   "nickname <serial> [name]",
	Short: "Set or clear a phone's nickname",
	Long: `Remember a friendly name for a phone. The nickname is shown by
'uad-tui devices'. Leave out the name to clear it.`,
	Example: `  # Name a phone
  uad-tui nickname R58N123ABC "Work phone"

  # Clear the nickname
  uad-tui nickname R58N123ABC`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNickname,
}

func runNickname(cmd *cobra.Command, args []string) error {
	serial := args[0]
	name := ""
	if len(args) == 2 {
		name = strings.TrimSpace(args[1])
	}

	sess.settings.SetNickname(serial, name)
	if err := sess.save(sess.settings); err != nil {
		return fmt.Errorf("failed to save nickname: %w", err)
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if name == "" {
		p.PrintResult(ui.NewSuccessResult("Nickname cleared", ui.Field{Key: "Serial", Value: serial}))
		return nil
	}
	p.PrintResult(ui.NewSuccessResult("Nickname saved",
		ui.Field{Key: "Serial", Value: serial},
		ui.Field{Key: "Nickname", Value: name}))
	return nil
}
