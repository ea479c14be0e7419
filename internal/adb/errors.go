package adb

import (
	"fmt"
	"strings"

	"github.com/uad-ng/uad-tui/internal/urls"
)

// ExecutionError is a failed adb invocation (non-zero exit or adb-reported
// failure in its output).
type ExecutionError struct {
	// Args are the arguments adb was run with.
	Args []string
	// ExitCode is the process exit code, -1 if it never started.
	ExitCode int
	// Output is stderr, or stdout when stderr was empty.
	Output string
	// Err is the underlying error, if any.
	Err error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("adb %s failed (exit code %d)", strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError means adb did not finish in time, typically because the phone
// stopped responding mid-command.
type TimeoutError struct {
	Args    []string
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("adb %s timed out after %s", strings.Join(e.Args, " "), e.Timeout)
}

// NotFoundError means the adb binary could not be run at all.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("adb binary %q not found: %v\n"+
		"Hint: install Android platform-tools (%s) or set adb_path in the config file.",
		e.Path, e.Err, urls.PlatformTools)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
