package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console logger writing to stderr, so stdout stays clean for
// the stdio MCP transport. Unknown levels fall back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
