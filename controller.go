package masonry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/internal/hooks"
	"github.com/brokenalarms/astro-masonry/internal/logging"
	"github.com/brokenalarms/astro-masonry/internal/metrics"
	"github.com/brokenalarms/astro-masonry/internal/throttle"
	"github.com/brokenalarms/astro-masonry/strategy"
)

// subscriberBuffer is the channel buffer of each layout subscriber.
const subscriberBuffer = 4

// Controller keeps a column layout in sync with a changing container width.
//
// On every width signal it resolves the column count from the breakpoint table.
// The items are redistributed only when the count changes; each redistribution
// is a full rebuild from the original item order. Width signals are throttled:
// the first signal after a quiet period is handled at once and the signals
// arriving inside the throttle window collapse into one trailing evaluation
// with the latest width.
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Layout state is owned by a single event-loop goroutine
//   - Layouts are published by atomic swap; readers never see a partial rebuild
//
// Lifecycle:
//   - Create with NewController()
//   - Call Start() with the initial width to build the first layout
//   - Feed widths with Notify() or attach a WidthSource with Watch()
//   - Call Stop() to tear the loop down; a stopped controller cannot restart
type Controller struct {
	cfg      Config
	source   ItemSource
	resolver *breakpoint.Resolver

	distributor Distributor
	publisher   LayoutPublisher
	hooks       Hooks
	metrics     MetricsCollector
	logger      Logger

	state  atomic.Int32  // State
	layout atomic.Value  // Layout
	width  atomic.Uint64 // math.Float64bits of the last evaluated width

	subscribers      *xsync.Map[uint64, *layoutSubscriber]
	nextSubscriberID atomic.Uint64

	signals chan float64
	reloads chan reloadRequest

	// Owned by the event loop after Start.
	items   []Item
	version int64

	// Lifecycle management
	ctx     context.Context
	cancel  context.CancelFunc
	unwatch []func()
	wg      sync.WaitGroup
	mu      sync.RWMutex
}

type reloadRequest struct {
	ctx  context.Context
	done chan error
}

// NewController creates a new Controller.
//
// Returns a concrete *Controller struct following the "accept interfaces,
// return structs" principle.
//
// Parameters:
//   - cfg: Configuration (defaults are applied in place)
//   - src: Item source read on Start and on Reload
//   - opts: Optional dependencies (logger, metrics, hooks, publisher, distributor)
//
// Returns:
//   - *Controller: Initialized controller in StateInit
//   - error: ErrInvalidConfig or ErrItemSourceRequired
//
// Example:
//
//	cfg := masonry.DefaultConfig()
//	cfg.Breakpoints = breakpoint.New(3, map[float64]int{600: 1, 900: 2})
//	cfg.Options.SortByHeight = true
//	ctrl, err := masonry.NewController(&cfg, source.NewStatic(items))
func NewController(cfg *Config, src ItemSource, opts ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if src == nil {
		return nil, ErrItemSourceRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	options := &controllerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)
	if cfg.Breakpoints.Malformed() != nil {
		metricsCollector.RecordBreakpointFallback()
	}

	distributor := options.distributor
	if distributor == nil {
		d, err := strategy.New(cfg.Options.Strategy(), options.heightProvider)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		distributor = d
	}

	c := &Controller{
		cfg:         *cfg,
		source:      src,
		resolver:    breakpoint.NewResolver(cfg.Breakpoints),
		distributor: distributor,
		publisher:   options.publisher,
		hooks:       hooks.Fill(options.hooks),
		metrics:     metricsCollector,
		logger:      loggerInstance,
		subscribers: xsync.NewMap[uint64, *layoutSubscriber](),
		signals:     make(chan float64, 1),
		reloads:     make(chan reloadRequest),
	}

	c.state.Store(int32(StateInit))
	c.layout.Store(Layout{})

	return c, nil
}

// Start loads the items, builds the initial layout for initialWidth and starts
// the event loop.
//
// The initial layout is visible through Layout() and has been handed to hooks,
// subscribers and the publisher by the time Start returns.
//
// Parameters:
//   - ctx: Context for the item source read and the initial publish
//   - initialWidth: Current container width (finite, >= 0)
//
// Returns:
//   - error: ErrInvalidWidth, ErrAlreadyStarted, ErrStopped, or an item source error
func (c *Controller) Start(ctx context.Context, initialWidth float64) error {
	if err := checkWidth(initialWidth); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.State() {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}

	c.seedVersion(ctx)

	items, err := c.listItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	c.items = items
	c.storeWidth(initialWidth)

	columns := c.resolver.Resolve(initialWidth)
	c.metrics.RecordResolve(columns, true)
	if err := c.rebuild(ctx, initialWidth, columns); err != nil {
		return err
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.transitionState(StateInit, StateRunning)

	c.wg.Add(1)
	go c.run(c.ctx)

	return nil
}

// Stop tears down the event loop and releases every width source attached with
// Watch. Subscriber channels are closed.
//
// Parameters:
//   - ctx: Context for shutdown timeout
//
// Returns:
//   - error: ErrNotStarted if the controller is not running, or ctx.Err() on timeout
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.State() != StateRunning {
		c.mu.Unlock()

		return ErrNotStarted
	}

	c.transitionState(StateRunning, StateStopped)
	c.cancel()
	unwatch := c.unwatch
	c.unwatch = nil
	c.mu.Unlock()

	for _, release := range unwatch {
		release()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		c.logger.Error("shutdown timeout exceeded, event loop may still be running")
		return ctx.Err()
	}

	c.subscribers.Range(func(id uint64, _ *layoutSubscriber) bool {
		c.removeSubscriber(id)
		return true
	})

	c.logger.Debug("controller stopped", "name", c.cfg.Name)

	return nil
}

// Notify delivers a width signal. It never blocks: if the event loop has not
// yet taken the previous signal, that signal is replaced (latest wins).
//
// Parameters:
//   - width: Container width (finite, >= 0)
//
// Returns:
//   - error: ErrInvalidWidth or ErrNotStarted
func (c *Controller) Notify(width float64) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	if c.State() != StateRunning {
		return ErrNotStarted
	}

	for {
		select {
		case c.signals <- width:
			return nil
		default:
		}

		// Mailbox full: drop the stale signal and retry.
		select {
		case <-c.signals:
			c.metrics.RecordSignal(true)
		default:
		}
	}
}

// Watch attaches a width source. Every width it reports is passed to Notify.
// The subscription is released on Stop.
//
// Parameters:
//   - ctx: Context for the subscription setup
//   - src: Width source
//
// Returns:
//   - error: ErrWidthSourceRequired, ErrNotStarted, or the source's subscribe error
func (c *Controller) Watch(ctx context.Context, src WidthSource) error {
	if src == nil {
		return ErrWidthSourceRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() != StateRunning {
		return ErrNotStarted
	}

	release, err := src.Subscribe(ctx, func(width float64) {
		if err := c.Notify(width); err != nil && !errors.Is(err, ErrNotStarted) {
			c.logger.Warn("ignoring width signal", "width", width, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to width source: %w", err)
	}
	c.unwatch = append(c.unwatch, release)

	return nil
}

// Reload re-reads the item source and rebuilds the layout at the current width,
// even when the column count is unchanged. Use it after items were added or
// removed.
//
// Parameters:
//   - ctx: Context for the item source read
//
// Returns:
//   - error: ErrNotStarted, ErrStopped, ctx.Err(), or the item source error
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.RLock()
	if c.State() != StateRunning {
		c.mu.RUnlock()

		return ErrNotStarted
	}
	loopCtx := c.ctx
	c.mu.RUnlock()

	req := reloadRequest{ctx: ctx, done: make(chan error, 1)}
	select {
	case c.reloads <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-loopCtx.Done():
		return ErrStopped
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-loopCtx.Done():
		return ErrStopped
	}
}

// Layout returns the current layout snapshot.
//
// The snapshot is immutable: callers must not modify its Columns. Before Start
// the zero Layout is returned.
func (c *Controller) Layout() Layout {
	if l, ok := c.layout.Load().(Layout); ok {
		return l
	}

	return Layout{}
}

// Width returns the most recently evaluated width.
func (c *Controller) Width() float64 {
	return math.Float64frombits(c.width.Load())
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Strategy returns the strategy kind of the controller's distributor.
func (c *Controller) Strategy() Strategy {
	return c.distributor.Kind()
}

// Subscribe returns a channel that receives every new layout.
//
// The channel is buffered and receives the current layout immediately. A slow
// subscriber loses intermediate layouts but always receives the newest one.
// The channel is closed by the unsubscribe function or by Stop.
//
// Returns:
//   - <-chan Layout: Channel that receives layouts
//   - func(): Unsubscribe function to clean up resources
//
// Example:
//
//	ch, unsubscribe := ctrl.Subscribe()
//	defer unsubscribe()
//	for layout := range ch {
//	    render(layout.Columns)
//	}
func (c *Controller) Subscribe() (<-chan Layout, func()) {
	id := c.nextSubscriberID.Add(1)

	sub := &layoutSubscriber{ch: make(chan Layout, subscriberBuffer)}
	c.subscribers.Store(id, sub)

	if current := c.Layout(); !current.IsZero() {
		sub.trySend(current)
	}

	unsubscribe := func() {
		c.removeSubscriber(id)
	}

	return sub.ch, unsubscribe
}

// removeSubscriber removes a subscriber and closes its channel.
func (c *Controller) removeSubscriber(id uint64) {
	if sub, ok := c.subscribers.LoadAndDelete(id); ok {
		sub.close()
	}
}

// run is the event loop. It owns items, version and the throttle.
func (c *Controller) run(ctx context.Context) {
	defer c.wg.Done()

	th := throttle.New[float64](c.cfg.ThrottleWindow)
	defer th.Stop()

	c.logger.Debug("controller event loop started", "name", c.cfg.Name, "throttleWindow", c.cfg.ThrottleWindow)
	defer c.logger.Debug("controller event loop stopped", "name", c.cfg.Name)

	for {
		select {
		case <-ctx.Done():
			return
		case width := <-c.signals:
			fire, coalesced := th.Signal(width)
			c.metrics.RecordSignal(coalesced)
			if fire {
				c.evaluate(ctx, width)
			} else {
				c.debug("width signal coalesced", "width", width)
			}
		case <-th.C():
			if width, fire := th.Expire(); fire {
				c.debug("trailing width signal", "width", width)
				c.evaluate(ctx, width)
			}
		case req := <-c.reloads:
			req.done <- c.reload(req.ctx)
		}
	}
}

// evaluate resolves the column count for width and rebuilds only on a change.
func (c *Controller) evaluate(ctx context.Context, width float64) {
	c.storeWidth(width)

	columns := c.resolver.Resolve(width)
	current := c.Layout().ColumnCount
	changed := columns != current
	c.metrics.RecordResolve(columns, changed)
	c.debug("resolved column count", "width", width, "columns", columns, "changed", changed)

	if !changed {
		return
	}

	if err := c.rebuild(ctx, width, columns); err != nil {
		c.logger.Error("layout rebuild failed", "width", width, "columns", columns, "error", err)
	}
}

// reload re-reads the item source and forces a rebuild.
func (c *Controller) reload(ctx context.Context) error {
	items, err := c.listItems(ctx)
	if err != nil {
		err = fmt.Errorf("failed to reload items: %w", err)
		c.reportError(ctx, err)

		return err
	}
	c.items = items

	width := c.Width()
	columns := c.resolver.Resolve(width)
	c.metrics.RecordResolve(columns, columns != c.Layout().ColumnCount)
	c.debug("reloaded items", "items", len(items), "width", width, "columns", columns)

	return c.rebuild(ctx, width, columns)
}

// rebuild distributes the items into columns and publishes the result.
func (c *Controller) rebuild(ctx context.Context, width float64, columns int) error {
	start := time.Now()

	cols, err := c.distributor.Distribute(c.items, columns)
	if err != nil {
		err = fmt.Errorf("redistribution failed: %w", err)
		c.reportError(ctx, err)

		return err
	}

	prev := c.Layout()
	c.version++
	next := Layout{
		Version:     c.version,
		Width:       width,
		ColumnCount: columns,
		Strategy:    c.distributor.Kind(),
		Columns:     cols,
	}
	c.layout.Store(next)

	kind := next.Strategy.String()
	c.metrics.RecordRedistribution(kind, len(c.items), time.Since(start).Seconds())
	c.metrics.RecordColumnCount(columns)
	c.debug("layout rebuilt",
		"version", next.Version,
		"columns", columns,
		"items", len(c.items),
		"strategy", kind,
		"fingerprint", fmt.Sprintf("%016x", next.Fingerprint()),
	)

	c.subscribers.Range(func(_ uint64, sub *layoutSubscriber) bool {
		sub.trySend(next)
		return true
	})

	if err := c.hooks.OnLayoutChanged(ctx, prev, next); err != nil {
		c.logger.Warn("OnLayoutChanged hook failed", "version", next.Version, "error", err)
	}

	c.publish(ctx, next)

	return nil
}

// publish hands the layout to the publisher, if any. Failures never fail layout.
func (c *Controller) publish(ctx context.Context, layout Layout) {
	if c.publisher == nil {
		return
	}

	pubCtx, cancel := c.operationContext(ctx)
	defer cancel()

	if err := c.publisher.Publish(pubCtx, layout); err != nil {
		c.metrics.RecordPublish(false)
		c.reportError(ctx, fmt.Errorf("%w: version %d: %w", ErrPublishFailed, layout.Version, err))

		return
	}
	c.metrics.RecordPublish(true)
}

// seedVersion continues the version sequence of a persistent publisher.
func (c *Controller) seedVersion(ctx context.Context) {
	vp, ok := c.publisher.(VersionedPublisher)
	if !ok {
		return
	}

	opCtx, cancel := c.operationContext(ctx)
	defer cancel()

	version, err := vp.HighestVersion(opCtx)
	if err != nil {
		c.logger.Warn("failed to discover published layout version, starting from 0", "error", err)
		return
	}
	if version > c.version {
		c.version = version
		c.logger.Info("continuing published layout versions", "name", c.cfg.Name, "highest_version", version)
	}
}

func (c *Controller) listItems(ctx context.Context) ([]Item, error) {
	opCtx, cancel := c.operationContext(ctx)
	defer cancel()

	items, err := c.source.ListItems(opCtx)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (c *Controller) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.OperationTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.OperationTimeout)
	}

	return context.WithCancel(ctx)
}

// reportError logs err and passes it to the OnError hook.
func (c *Controller) reportError(ctx context.Context, err error) {
	c.logger.Warn("layout error", "name", c.cfg.Name, "error", err)
	if hookErr := c.hooks.OnError(ctx, err); hookErr != nil {
		c.logger.Warn("OnError hook failed", "error", hookErr)
	}
}

func (c *Controller) transitionState(from, to State) {
	c.state.Store(int32(to)) //nolint:gosec // G115: state is bounded enum, safe conversion
	c.debug("state transition", "from", from, "to", to)
}

func (c *Controller) storeWidth(width float64) {
	c.width.Store(math.Float64bits(width))
}

// debug logs only when Options.Debug is set.
func (c *Controller) debug(msg string, keysAndValues ...any) {
	if c.cfg.Options.Debug {
		c.logger.Debug(msg, keysAndValues...)
	}
}

func checkWidth(width float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, width)
	}

	return nil
}
