package metrics

import "github.com/brokenalarms/astro-masonry/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	metrics := metrics.NewNop()
//	ctrl, err := masonry.NewController(&cfg, src, masonry.WithMetrics(metrics))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ResolverMetrics implementation

// RecordResolve discards the resolve metric.
func (n *NopMetrics) RecordResolve(_ /* columns */ int, _ /* changed */ bool) {
	// No-op
}

// RecordBreakpointFallback discards the fallback metric.
func (n *NopMetrics) RecordBreakpointFallback() {
	// No-op
}

// DistributorMetrics implementation

// RecordRedistribution discards the redistribution metric.
func (n *NopMetrics) RecordRedistribution(_ /* strategy */ string, _ /* items */ int, _ /* duration */ float64) {
	// No-op
}

// RecordColumnCount discards the column count metric.
func (n *NopMetrics) RecordColumnCount(_ /* count */ int) {
	// No-op
}

// ControllerMetrics implementation

// RecordSignal discards the signal metric.
func (n *NopMetrics) RecordSignal(_ /* coalesced */ bool) {
	// No-op
}

// RecordPublish discards the publish metric.
func (n *NopMetrics) RecordPublish(_ /* success */ bool) {
	// No-op
}
