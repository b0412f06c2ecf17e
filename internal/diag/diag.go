// Package diag is the core's one logging seam: a thin wrapper over
// logrus used by the GC to report cycle summaries and by pool to report
// manuals rollback. Nothing in cellcore, stub, or series logs — those
// packages are pure data structure manipulation and stay silent, per the
// teacher's own habit of confining diagnostic chatter to the VM and GC
// layers rather than scattering it through value.go.
package diag

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// Logger returns the shared diagnostics logger, created on first use at
// Info level with a text formatter whose colors follow whether stdout is
// a terminal (mattn/go-isatty — previously an unused teacher dependency).
func Logger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   isatty.IsTerminal(uintptr(1)),
			FullTimestamp: false,
		})
		logger.SetLevel(logrus.InfoLevel)
	})
	return logger
}

// SetOutput redirects the logger's output (tests use this to capture and
// assert on log lines without touching stdout).
func SetOutput(w io.Writer) { Logger().SetOutput(w) }

// SetDebug turns on debug-level logging, used by wyrdtool's `trace`
// subcommand for a single evaluation.
func SetDebug(on bool) {
	if on {
		Logger().SetLevel(logrus.DebugLevel)
	} else {
		Logger().SetLevel(logrus.InfoLevel)
	}
}

// NewCorrelationID mints a fresh id (google/uuid — previously an unused
// teacher dependency). Nothing in the module calls it; no evaluation or
// GC log line carries a correlation id.
func NewCorrelationID() string {
	return uuid.NewString()
}
