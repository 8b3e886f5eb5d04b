// Package logging constructs the CLI logger.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing human-readable lines to stderr. quiet
// raises the level so only errors are shown.
func New(quiet bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	if quiet {
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}
