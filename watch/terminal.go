package watch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/brokenalarms/astro-masonry/internal/logging"
	"github.com/brokenalarms/astro-masonry/types"
)

// defaultPollInterval is used where resize signals are unavailable.
const defaultPollInterval = 500 * time.Millisecond

// Terminal is a width source reporting a terminal's width in cells.
//
// The current width is reported once on Subscribe and again after every
// resize (SIGWINCH on unix, polling elsewhere).
type Terminal struct {
	fd           int
	getSize      func(fd int) (width, height int, err error)
	pollInterval time.Duration
	logger       types.Logger
}

var _ types.WidthSource = (*Terminal)(nil)

// NewTerminal creates a width source for the terminal on fd.
func NewTerminal(fd int, logger types.Logger) *Terminal {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Terminal{
		fd:           fd,
		getSize:      term.GetSize,
		pollInterval: defaultPollInterval,
		logger:       logger,
	}
}

// NewStdoutTerminal creates a width source for the terminal attached to stdout.
func NewStdoutTerminal(logger types.Logger) *Terminal {
	return NewTerminal(int(os.Stdout.Fd()), logger) //nolint:gosec // fd fits in int
}

// Width reads the current terminal width.
func (t *Terminal) Width() (float64, error) {
	w, _, err := t.getSize(t.fd)
	if err != nil {
		return 0, fmt.Errorf("%w: fd %d: %w", ErrNotTerminal, t.fd, err)
	}

	return float64(w), nil
}

// Subscribe reports the current width and then every resize until the
// returned function is called.
func (t *Terminal) Subscribe(_ context.Context, notify func(width float64)) (func(), error) {
	width, err := t.Width()
	if err != nil {
		return nil, err
	}
	notify(width)

	stop := make(chan struct{})
	done := t.start(stop, width, notify)

	var once sync.Once

	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}, nil
}

// report reads the width and notifies when it differs from last.
func (t *Terminal) report(last float64, notify func(float64)) float64 {
	width, err := t.Width()
	if err != nil {
		t.logger.Debug("failed to read terminal width", "error", err)
		return last
	}
	if width != last {
		notify(width)
	}

	return width
}
