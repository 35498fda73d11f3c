// +build !logless

// Package logger provides the module-wide structured logger. wbcored and
// every pkg/wbd component log through the package-level Log rather than
// constructing their own zerolog.Logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
)

// Log is the process-wide logger. It defaults to a human-readable console
// writer for interactive runs; setting WBCORE_LOG_FORMAT=json switches to
// zerolog's compact JSON writer (no caller annotation, since the caller
// pair costs a stack walk per line and production scraping doesn't read
// it) for production deployments where logs are shipped to an aggregator.
var Log = newLogger()

func newLogger() zerolog.Logger {
	base := logger.With().Logger()
	if os.Getenv("WBCORE_LOG_FORMAT") == "json" {
		return base.Output(os.Stderr)
	}
	return base.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
