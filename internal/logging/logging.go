// Package logging configures structured logging for the CLI and the
// conversion pipeline. Core packages take a zerolog.Logger in their
// constructors and default to a no-op logger, so the library stays
// silent unless the caller wires one in.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a console logger writing to w at the given level. Unknown
// level names fall back to info; "quiet" disables output entirely.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)
	if lvl == zerolog.Disabled {
		return zerolog.Nop()
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

// ParseLevel maps a config/flag level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "quiet", "off", "disabled":
		return zerolog.Disabled
	}
	return zerolog.InfoLevel
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
