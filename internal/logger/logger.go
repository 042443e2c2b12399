package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	Logger        *log.Logger
	currentWriter io.Writer = os.Stderr
)

func init() {
	Logger = log.New(os.Stderr)

	logLevel := strings.ToUpper(os.Getenv("KEYRD_LOG_LEVEL"))
	switch logLevel {
	case "DEBUG":
		Logger.SetLevel(log.DebugLevel)
	case "INFO":
		Logger.SetLevel(log.InfoLevel)
	case "WARN", "WARNING":
		Logger.SetLevel(log.WarnLevel)
	case "ERROR":
		Logger.SetLevel(log.ErrorLevel)
	case "FATAL":
		Logger.SetLevel(log.FatalLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}
}

// Convenience functions for common operations.
func Info(msg interface{}, keyvals ...interface{})  { Logger.Info(msg, keyvals...) }
func Debug(msg interface{}, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { Logger.Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
func Fatal(msg interface{}, keyvals ...interface{}) { Logger.Fatal(msg, keyvals...) }

func Infof(format string, args ...interface{})  { Logger.Infof(format, args...) }
func Debugf(format string, args ...interface{}) { Logger.Debugf(format, args...) }
func Warnf(format string, args ...interface{})  { Logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { Logger.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { Logger.Fatalf(format, args...) }

// SetLevel sets the log level from a string.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		Logger.SetLevel(log.DebugLevel)
	case "INFO":
		Logger.SetLevel(log.InfoLevel)
	case "WARN", "WARNING":
		Logger.SetLevel(log.WarnLevel)
	case "ERROR":
		Logger.SetLevel(log.ErrorLevel)
	case "FATAL":
		Logger.SetLevel(log.FatalLevel)
	}
}

// SetOutput redirects the logger output to a different writer, preserving
// the level in effect.
func SetOutput(w io.Writer) {
	currentWriter = w
	level := Logger.GetLevel()
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	Logger.SetLevel(level)
}

// SetPrefix sets a prefix for the logger, preserving the level in effect.
func SetPrefix(prefix string) {
	level := Logger.GetLevel()
	Logger = log.NewWithOptions(currentWriter, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	Logger.SetLevel(level)
}

// SetupFileLogging redirects both the internal logger and charmbracelet/log's
// default logger to a rotation-free append-only file, preserving the
// current level unless KEYRD_LOG_LEVEL is set, in which case that level is
// applied instead. Used by the daemon when run detached from a terminal.
func SetupFileLogging(prefix string) (*os.File, error) {
	var logDir, logPath string

	if os.Geteuid() == 0 {
		logDir = "/var/log/keyrd"
		logPath = filepath.Join(logDir, "keyrd.log")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create system log directory: %v", err)
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}

		logDir = filepath.Join(homeDir, ".local", "share", "keyrd")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			logDir = filepath.Join(homeDir, ".keyrd")
			if err := os.MkdirAll(logDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %v", err)
			}
		}

		logPath = filepath.Join(logDir, "keyrd.log")
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // logPath is validated
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %v", logPath, err)
	}

	if _, err := fmt.Fprintf(logFile, "\n%s %s: === New session started === (log: %s)\n",
		time.Now().Format("15:04:05"), prefix, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to write to log file: %v\n", err)
	}

	fileLogger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	log.SetDefault(fileLogger)

	savedLevel := Logger.GetLevel()
	currentWriter = logFile
	Logger = log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})

	envLevel := strings.ToUpper(os.Getenv("KEYRD_LOG_LEVEL"))
	if envLevel != "" {
		SetLevel(envLevel)
		Logger.Infof("Setting log level to: %s (from KEYRD_LOG_LEVEL env var)", envLevel)
	} else {
		Logger.SetLevel(savedLevel)
		Logger.Infof("Keeping current log level: %s", savedLevel)
	}

	Info(prefix + ": file logging initialized")

	return logFile, nil
}

// Get returns the logger instance.
func Get() *log.Logger {
	return Logger
}
