package types

// MetricsCollector defines methods for recording layout metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	ResolverMetrics
	DistributorMetrics
	ControllerMetrics
}

// ResolverMetrics defines metrics for breakpoint resolution.
type ResolverMetrics interface {
	// RecordResolve records one breakpoint resolution.
	//
	// Parameters:
	//   - columns: Resolved column count
	//   - changed: true if the count differs from the previous resolution
	RecordResolve(columns int, changed bool)

	// RecordBreakpointFallback records that malformed breakpoint input was replaced
	// by the fallback table.
	RecordBreakpointFallback()
}

// DistributorMetrics defines metrics for column distribution.
type DistributorMetrics interface {
	// RecordRedistribution records a full redistribution.
	//
	// Parameters:
	//   - strategy: Strategy name
	//   - items: Number of items distributed
	//   - duration: Time taken in seconds
	RecordRedistribution(strategy string, items int, duration float64)

	// RecordColumnCount sets the current column count (gauge metric).
	RecordColumnCount(count int)
}

// ControllerMetrics defines metrics for the controller event loop.
type ControllerMetrics interface {
	// RecordSignal records a width signal.
	//
	// Parameters:
	//   - coalesced: true if the signal was folded into a pending trailing evaluation
	RecordSignal(coalesced bool)

	// RecordPublish records a layout publish attempt.
	RecordPublish(success bool)
}
