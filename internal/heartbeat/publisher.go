package heartbeat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/brokenalarms/astro-masonry/internal/logging"
	"github.com/brokenalarms/astro-masonry/types"
)

// Common errors for heartbeat operations.
var (
	ErrNotStarted     = errors.New("heartbeat not started")
	ErrAlreadyStarted = errors.New("heartbeat already started")
	ErrNoName         = errors.New("heartbeat name not set")
)

// publishTimeout bounds each background KV write.
const publishTimeout = 5 * time.Second

// Beat is the JSON value stored for each heartbeat.
type Beat struct {
	Name        string    `json:"name"`
	At          time.Time `json:"at"`
	Version     int64     `json:"version"`
	ColumnCount int       `json:"columnCount"`
}

// StatusFunc returns the layout the heartbeat reports on.
type StatusFunc func() types.Layout

// Publisher publishes periodic heartbeats to a NATS KV bucket.
type Publisher struct {
	kv       jetstream.KeyValue
	prefix   string
	name     string
	interval time.Duration
	status   StatusFunc
	logger   types.Logger

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	beats   int
}

// New creates a heartbeat publisher.
//
// Parameters:
//   - kv: KV bucket for heartbeats (TTL ~3x interval)
//   - prefix: Key prefix (e.g., "hb")
//   - name: Layout name, usually Config.Name
//   - interval: Heartbeat interval
//   - status: Current layout source (nil reports an empty layout)
//   - logger: Logger for publish failures (nil for no logging)
//
// Returns:
//   - *Publisher: New heartbeat publisher instance
func New(
	kv jetstream.KeyValue,
	prefix string,
	name string,
	interval time.Duration,
	status StatusFunc,
	logger types.Logger,
) *Publisher {
	if status == nil {
		status = func() types.Layout { return types.Layout{} }
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Publisher{
		kv:       kv,
		prefix:   prefix,
		name:     name,
		interval: interval,
		status:   status,
		logger:   logger,
	}
}

// Key returns the KV key heartbeats are written to.
func (p *Publisher) Key() string {
	return p.prefix + "." + p.name
}

// Start publishes the first heartbeat immediately, then one per interval
// until Stop.
//
// Returns:
//   - error: ErrAlreadyStarted, ErrNoName, or the initial publish error
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	if p.name == "" {
		return ErrNoName
	}

	if err := p.publish(ctx); err != nil {
		return fmt.Errorf("failed to publish initial heartbeat: %w", err)
	}

	p.started = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	go p.publishLoop(p.stopCh, p.doneCh)

	return nil
}

// Stop ends publishing and deletes the heartbeat key so that watchers see the
// shutdown without waiting for the TTL.
//
// Returns:
//   - error: ErrNotStarted, or the delete error
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return ErrNotStarted
	}
	close(p.stopCh)
	done := p.doneCh
	p.started = false
	p.mu.Unlock()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.kv.Delete(ctx, p.Key()); err != nil {
		return fmt.Errorf("stopped but failed to delete heartbeat: %w", err)
	}

	return nil
}

// IsStarted reports whether the publisher is running.
func (p *Publisher) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.started
}

// Beats returns the number of heartbeats written successfully.
func (p *Publisher) Beats() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.beats
}

func (p *Publisher) publishLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			p.mu.Lock()
			err := p.publish(ctx)
			p.mu.Unlock()
			cancel()

			if err != nil {
				// Keep trying; the TTL expires the key if failures persist
				p.logger.Warn("heartbeat failed", "key", p.Key(), "error", err)
			}
		}
	}
}

// publish writes one heartbeat. Callers hold p.mu.
func (p *Publisher) publish(ctx context.Context) error {
	layout := p.status()
	data, err := json.Marshal(Beat{
		Name:        p.name,
		At:          time.Now().UTC(),
		Version:     layout.Version,
		ColumnCount: layout.ColumnCount,
	})
	if err != nil {
		return err
	}

	if _, err := p.kv.Put(ctx, p.Key(), data); err != nil {
		return fmt.Errorf("failed to publish heartbeat for %s: %w", p.name, err)
	}
	p.beats++

	return nil
}

// Read returns the heartbeat stored under "<prefix>.<name>".
//
// Returns:
//   - Beat: Decoded heartbeat
//   - error: jetstream.ErrKeyNotFound (wrapped) when the service is gone
func Read(ctx context.Context, kv jetstream.KeyValue, prefix, name string) (Beat, error) {
	key := prefix + "." + name

	entry, err := kv.Get(ctx, key)
	if err != nil {
		return Beat{}, fmt.Errorf("failed to read heartbeat %s: %w", key, err)
	}

	var beat Beat
	if err := json.Unmarshal(entry.Value(), &beat); err != nil {
		return Beat{}, fmt.Errorf("failed to decode heartbeat %s: %w", key, err)
	}

	return beat, nil
}
