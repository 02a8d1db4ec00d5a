// Package logging wraps zerolog with the small set of configuration axes a
// single-run CLI and its HTTP API need: level, output format, and sink.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Format is the log output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config configures a Logger. Trimmed relative to a multi-node distributed
// server's logger config: no file rotation, buffering, or sampling, since a
// one-shot CLI invocation or a single HTTP process needs none of that.
type Config struct {
	Level  string // debug, info, warn, error
	Format Format
	Output io.Writer
}

// Logger wraps a zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New builds a Logger from a Config, defaulting to info level, console
// format, and stderr when fields are left zero.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	writer := out
	if cfg.Format != FormatJSON {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	l := zerolog.New(writer).With().Timestamp().Logger().Level(level)
	return &Logger{Logger: l}
}

// Nop returns a Logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}
