package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance, set by Init.
var Logger zerolog.Logger

// Level names a logging verbosity, independent of zerolog's own type
// so callers never need to import zerolog just to set Config.Level.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	TraceLevel Level = "trace"
)

// Config holds logging configuration.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init initializes the global logger from cfg.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case TraceLevel:
		level = zerolog.TraceLevel
	case DebugLevel:
		level = zerolog.DebugLevel
	case InfoLevel:
		level = zerolog.InfoLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.WarnLevel
	}

	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// LevelForVerbosity maps spec.md §6.1's repeated -v flag count to a
// Level: 0 -> warn, 1 -> info, 2 -> debug, 3+ -> trace.
func LevelForVerbosity(count int) Level {
	switch {
	case count <= 0:
		return WarnLevel
	case count == 1:
		return InfoLevel
	case count == 2:
		return DebugLevel
	default:
		return TraceLevel
	}
}

// WithComponent creates a child logger tagging every event with
// component.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithOperation creates a child logger tagging every event with both
// component and the operation being performed, e.g. "list-files".
func WithOperation(component, operation string) zerolog.Logger {
	return Logger.With().Str("component", component).Str("operation", operation).Logger()
}
