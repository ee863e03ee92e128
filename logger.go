package marionette

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// loggerPtr stores the active logger. Accessed atomically so SetLogger may
// be called while another goroutine evaluates a different puppet.
var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newDefaultLogger())
}

func newDefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "marionette",
		Level:  log.WarnLevel,
	})
}

// SetLogger replaces the logger used by marionette and its sub-packages.
// Pass nil to restore the default, which writes warnings and errors to
// stderr.
//
// Levels used:
//   - debug: physics step roll-backs, duplicate component attaches, frame stats
//   - warn: drawables that cannot be resolved to a renderable kind
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *log.Logger {
	return loggerPtr.Load()
}
