package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brokenalarms/astro-masonry/internal/logging"
	"github.com/brokenalarms/astro-masonry/types"
)

// newLogger creates a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// libraryLogger adapts the CLI logger for masonry components.
func (c *CLI) libraryLogger() types.Logger {
	return logging.NewCharm(c.Logger)
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Layout built (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
