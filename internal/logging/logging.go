// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
)

// New builds the process logger. Config must be normalized.
// An unparsable level falls back to info.
func New(c config.LogConfig) zerolog.Logger {
	return NewWithWriter(c, os.Stderr)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(c config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if c.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ForDevice returns a child logger carrying the device identity.
func ForDevice(log zerolog.Logger, name string, unit uint8) zerolog.Logger {
	return log.With().Str("device", name).Uint8("unit", unit).Logger()
}
