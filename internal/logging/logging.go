// Package logging builds the zerolog logger used for blurb's diagnostics.
// Diagnostics go to stderr so they never mix with command output.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	// Debug lowers the level from warn to debug.
	Debug bool
	// Out defaults to os.Stderr.
	Out io.Writer
	// Pretty selects the human-readable console format over JSON lines.
	Pretty bool
	// NoColor disables colors in the console format.
	NoColor bool
}

// Level returns the level for cfg.
func (c Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// New creates a logger
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Out != nil {
		out = cfg.Out
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.NoColor,
		}
	}

	return zerolog.New(out).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}
