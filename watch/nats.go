package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/brokenalarms/astro-masonry/internal/logging"
	"github.com/brokenalarms/astro-masonry/types"
)

// DefaultSubject is the subject renderers publish container widths on.
const DefaultSubject = "masonry.width"

// widthMessage is the JSON form of a width signal.
type widthMessage struct {
	Width *float64 `json:"width"`
}

// NATS is a width source fed by messages on a NATS subject.
//
// A message body is either a bare number ("1024", "1024.5") or a JSON object
// {"width": 1024}. Malformed messages are logged and dropped.
type NATS struct {
	nc      *nats.Conn
	subject string
	logger  types.Logger
}

var _ types.WidthSource = (*NATS)(nil)

// NewNATS creates a width source subscribed to subject (DefaultSubject when empty).
func NewNATS(nc *nats.Conn, subject string, logger types.Logger) *NATS {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &NATS{nc: nc, subject: subject, logger: logger}
}

// Subject returns the subscribed subject.
func (n *NATS) Subject() string {
	return n.subject
}

// Subscribe delivers every well-formed width on the subject to notify.
//
// The subscription is flushed before Subscribe returns, so widths published
// afterwards are never missed.
func (n *NATS) Subscribe(ctx context.Context, notify func(width float64)) (func(), error) {
	sub, err := n.nc.Subscribe(n.subject, func(msg *nats.Msg) {
		width, err := ParseWidth(msg.Data)
		if err != nil {
			n.logger.Warn("dropping width message", "subject", msg.Subject, "error", err)
			return
		}
		notify(width)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", n.subject, err)
	}

	if err := n.nc.FlushWithContext(ctx); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("failed to flush subscription to %s: %w", n.subject, err)
	}

	n.logger.Debug("watching widths", "subject", n.subject)

	var once sync.Once

	return func() {
		once.Do(func() {
			if err := sub.Unsubscribe(); err != nil {
				n.logger.Debug("unsubscribe failed", "subject", n.subject, "error", err)
			}
		})
	}, nil
}

// PublishWidth publishes width on subject in the bare-number form.
func PublishWidth(nc *nats.Conn, subject string, width float64) error {
	if subject == "" {
		subject = DefaultSubject
	}

	return nc.Publish(subject, strconv.AppendFloat(nil, width, 'f', -1, 64))
}

// ParseWidth decodes a width message body.
//
// Returns:
//   - float64: Finite, non-negative width
//   - error: ErrMalformedWidth (wrapped) for anything else
func ParseWidth(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty message", ErrMalformedWidth)
	}

	var width float64
	if data[0] == '{' {
		var msg widthMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrMalformedWidth, err)
		}
		if msg.Width == nil {
			return 0, fmt.Errorf("%w: missing \"width\" field", ErrMalformedWidth)
		}
		width = *msg.Width
	} else {
		w, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedWidth, data)
		}
		width = w
	}

	if width < 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return 0, fmt.Errorf("%w: width %v out of range", ErrMalformedWidth, width)
	}

	return width, nil
}
