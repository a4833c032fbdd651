package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newDefault()
)

func newDefault() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the process-wide logger. Intended for main and tests.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// NewLogger creates a structured JSON logger writing to w at the given level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewConsoleLogger creates a human-readable logger writing to w.
// This is the format used by the aeroml command line tool.
func NewConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().Timestamp().Logger()
}

// ToLevel converts a textual level ("trace", "debug", "info", "warn",
// "error") to a zerolog level. Unknown strings fall back to Info.
func ToLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Stage returns a child of the process-wide logger tagged with the
// pipeline stage name.
//
// Example:
//
//	log.Stage("clean").Info().
//	    Int(log.RowsKey, rows).
//	    Msg("cleaning finished")
func Stage(name string) zerolog.Logger {
	return Logger().With().Str(StageKey, name).Logger()
}
