// Package logger wraps a process-wide zerolog instance. Callers log through
// the package-level event constructors, so the log destination and level can
// be swapped once at startup from the loaded configuration.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel names a zerolog level in configuration
type LogLevel string

// Levels accepted in the logging config section
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config selects the level and output format of the shared logger
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to the human-readable console format
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

var shared zerolog.Logger

func parseLevel(level LogLevel) zerolog.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Configure rebuilds the shared logger. Safe to call once more after the
// configuration is loaded, replacing the init-time defaults.
func Configure(config Config) {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(config.Level))

	var writer io.Writer = out
	if config.Pretty {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	shared = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = shared
}

// Debug starts a debug-level event
func Debug() *zerolog.Event {
	return shared.Debug()
}

// Info starts an info-level event
func Info() *zerolog.Event {
	return shared.Info()
}

// Warn starts a warn-level event
func Warn() *zerolog.Event {
	return shared.Warn()
}

// Error starts an error-level event
func Error() *zerolog.Event {
	return shared.Error()
}

// Fatal starts a fatal-level event; the message call exits the process
func Fatal() *zerolog.Event {
	return shared.Fatal()
}

func init() {
	Configure(Config{Level: InfoLevel})
}
