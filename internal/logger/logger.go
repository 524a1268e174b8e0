// Package logger configures zerolog for the application.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns the application logger. Pretty mode writes a human-friendly
// console format; otherwise output is JSON, one event per line.
func New(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
