package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFileHandle tracks the current log file for cleanup.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup
var logFileHandle *os.File

// logMu protects concurrent access to logFileHandle and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger initializes the package-level Logger with the specified log
// level and optional file output. The level defaults to info on parse
// error. When file is non-empty, logs are written there in addition to the
// console.
func InitLogger(level, file string) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})

	// Close any previously opened log file to prevent handle leaks.
	closeLogFileLocked()

	if file != "" {
		logFile, fileErr := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr != nil {
			return fileErr
		}
		logFileHandle = logFile
		writers = append(writers, logFile)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseLogFile closes the current log file handle, if any, and resets the
// Logger to a console-only writer so later logs never hit a closed file.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked closes the log file and resets the logger. Must be
// called with logMu held.
func closeLogFileLocked() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil

		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).
			Level(Logger.GetLevel()).
			With().
			Timestamp().
			Logger()
	}
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// init sets up a console-only info logger so logging works before any
// configuration is loaded.
//
//nolint:gochecknoinits // intentional: package-level logger must be initialized before use
func init() {
	_ = InitLogger("info", "")
}
