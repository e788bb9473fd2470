// Package logging builds the zerolog logger shared by the CLI and the
// memory component.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	Level  string // trace, debug, info, warn, error; empty means warn
	Format string // console or json
	Out    io.Writer
}

// New returns a logger writing to opts.Out (stderr by default).
func New(opts Options) (zerolog.Logger, error) {
	levelName := strings.ToLower(strings.TrimSpace(opts.Level))
	if levelName == "" {
		levelName = "warn"
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level '%s': %w", opts.Level, err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format '%s' (use console or json)", opts.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
