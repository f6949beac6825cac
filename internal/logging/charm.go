package logging

import (
	charmlog "github.com/charmbracelet/log"

	"github.com/brokenalarms/astro-masonry/types"
)

// CharmLogger implements types.Logger on top of github.com/charmbracelet/log.
//
// The CLI uses it so library diagnostics share the terminal formatting of
// command output.
type CharmLogger struct {
	logger *charmlog.Logger
}

var _ types.Logger = (*CharmLogger)(nil)

// NewCharm wraps a charmbracelet logger. A nil logger uses charmlog.Default().
func NewCharm(logger *charmlog.Logger) *CharmLogger {
	if logger == nil {
		logger = charmlog.Default()
	}

	return &CharmLogger{logger: logger}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *CharmLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info-level message with optional key-value pairs.
func (l *CharmLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *CharmLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs an error-level message with optional key-value pairs.
func (l *CharmLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}
