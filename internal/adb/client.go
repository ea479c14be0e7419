// Package adb drives the Android Debug Bridge command-line tool.
package adb

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uad-ng/uad-tui/internal/apps"
	"github.com/uad-ng/uad-tui/internal/device"
	"github.com/uad-ng/uad-tui/internal/logging"
)

// DefaultTimeout bounds a single adb invocation.
const DefaultTimeout = 30 * time.Second

// Runner runs a command and captures its output. The exec implementation is
// used in production; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, exitCode int, err error)
}

// Client runs adb commands.
type Client struct {
	// Path is the adb binary, "adb" to search PATH.
	Path string

	// Timeout bounds each invocation.
	Timeout time.Duration

	runner Runner
	logger *zap.Logger
}

// NewClient creates a client for the adb binary at path.
func NewClient(path string, logger *zap.Logger) *Client {
	return NewClientWithRunner(path, execRunner{}, logger)
}

// NewClientWithRunner creates a client that runs commands through r.
func NewClientWithRunner(path string, r Runner, logger *zap.Logger) *Client {
	if path == "" {
		path = "adb"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		Path:    path,
		Timeout: DefaultTimeout,
		runner:  r,
		logger:  logger,
	}
}

// Devices lists every phone the adb server knows, in adb's order.
func (c *Client) Devices(ctx context.Context) ([]device.Phone, error) {
	out, err := c.run(ctx, "devices", "-l")
	if err != nil {
		return nil, err
	}
	phones := device.ParseDevicesOutput(out)
	c.logger.Debug("listed adb devices", zap.Int("count", len(phones)))
	return phones, nil
}

// Reboot restarts the phone with the given serial.
func (c *Client) Reboot(ctx context.Context, serial string) error {
	_, err := c.run(ctx, "-s", serial, "reboot")
	if err == nil {
		logging.LogDeviceEvent(serial, "reboot_requested")
	}
	return err
}

// ListPackages returns all packages on the phone, including ones uninstalled
// for the current user. Enabled is set from `pm list packages -e`, which omits
// both disabled and uninstalled packages.
func (c *Client) ListPackages(ctx context.Context, serial string) ([]apps.Package, error) {
	all, err := c.run(ctx, "-s", serial, "shell", "pm", "list", "packages", "-f", "-u")
	if err != nil {
		return nil, err
	}
	enabledOut, err := c.run(ctx, "-s", serial, "shell", "pm", "list", "packages", "-e")
	if err != nil {
		return nil, err
	}

	enabled := apps.PackageNames(apps.ParsePackages(enabledOut, nil))
	return apps.ParsePackages(all, enabled), nil
}

// Connect attaches a wireless-debugging endpoint (host:port) to the adb
// server. adb exits 0 even when the connection fails, so the output is
// checked too.
func (c *Client) Connect(ctx context.Context, address string) error {
	args := []string{"connect", address}
	out, err := c.run(ctx, args...)
	if err != nil {
		return err
	}
	lower := strings.ToLower(out)
	if strings.Contains(lower, "connected to") {
		logging.LogDeviceEvent(address, "connected")
		return nil
	}
	return &ExecutionError{Args: args, Output: out}
}

// run executes adb with args and returns stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, exitCode, err := c.runner.Run(ctx, c.Path, args...)
	logging.LogCommand(c.Path, args, time.Since(start), exitCode, err)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &TimeoutError{Args: args, Timeout: c.Timeout.String()}
	}
	if err != nil || exitCode != 0 {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "", err
		}
		output := stderr
		if strings.TrimSpace(output) == "" {
			output = stdout
		}
		return "", &ExecutionError{Args: args, ExitCode: exitCode, Output: output, Err: err}
	}
	return stdout, nil
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			exitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrNotFound):
			return "", "", -1, &NotFoundError{Path: name, Err: err}
		default:
			exitCode = -1
		}
	}

	return stdoutBuf.String(), stderrBuf.String(), exitCode, err
}
