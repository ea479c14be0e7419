package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	// output is where the logger writes: "" when silent, "stderr" or a file path.
	output string
)

// Stderr is the destination used when logging is enabled without a file.
const Stderr = "stderr"

const (
	// LogLevelEnvVar controls verbosity. Unset or empty means silent.
	// Valid values: "debug", "info", "warn", "error".
	LogLevelEnvVar = "UADTUI_LOG_LEVEL"

	// LogFileEnvVar redirects log output to a file instead of stderr.
	LogFileEnvVar = "UADTUI_LOG_FILE"
)

// Initialize builds the global logger. Empty arguments fall back to the
// UADTUI_LOG_LEVEL and UADTUI_LOG_FILE environment variables. With no level
// at all, logging is disabled.
func Initialize(level, file string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if file == "" {
		file = os.Getenv(LogFileEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		output = ""
		return nil
	}

	dest := Stderr
	if file != "" {
		dest = file
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{dest},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	// Colour codes are noise in a log file.
	if file == "" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	output = dest
	return nil
}

// Output reports where log entries go: "" when logging is off, Stderr, or
// the log file path.
func Output() string {
	return output
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
	output = ""
}

// GetLogger returns the global logger, or a no-op logger if Initialize has
// not been called.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogDeviceEvent records something that happened to a phone
// ("selected", "reboot_requested", "connected").
func LogDeviceEvent(serial, event string) {
	Info("Device event",
		zap.String("serial", serial),
		zap.String("event", event),
	)
}

// LogNavEvent records a navigation bar activation.
func LogNavEvent(kind string, fields ...zap.Field) {
	Debug("Navigation event", append([]zap.Field{zap.String("kind", kind)}, fields...)...)
}

// LogCommand records an external command run and how it ended.
func LogCommand(name string, args []string, duration time.Duration, exitCode int, err error) {
	fields := []zap.Field{
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Duration("duration", duration),
		zap.Int("exit_code", exitCode),
	}
	if err != nil {
		Warn("Command failed", append(fields, zap.Error(err))...)
		return
	}
	Debug("Command finished", fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
