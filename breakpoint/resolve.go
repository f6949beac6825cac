package breakpoint

// Resolve returns the column count for width.
//
// The algorithm:
//  1. Sort the thresholds ascending
//  2. Return the column count of the first threshold t with width <= t
//  3. If width exceeds every threshold, return the table default
//
// The smallest qualifying threshold wins. A table whose default is not positive
// (which Validate rejects) resolves unmatched widths to FallbackColumns so the
// result is always >= 1.
//
// Parameters:
//   - width: Viewport or container width
//   - t: Breakpoint table
//
// Returns:
//   - int: Column count (>= 1 for any table that passes Validate)
func Resolve(width float64, t Table) int {
	return NewResolver(t).Resolve(width)
}

// Resolver resolves widths against a table whose thresholds were sorted once.
//
// Use a Resolver when the same table is consulted repeatedly (e.g. on every
// resize signal); Resolve is the one-shot equivalent.
type Resolver struct {
	thresholds []float64
	columns    []int
	fallback   int
}

// NewResolver prepares a resolver for t.
//
// The table is copied; later changes to t do not affect the resolver.
func NewResolver(t Table) *Resolver {
	sorted := t.sortedThresholds()
	r := &Resolver{
		thresholds: sorted,
		columns:    make([]int, len(sorted)),
		fallback:   t.Default,
	}
	for i, threshold := range sorted {
		r.columns[i] = t.Thresholds[threshold]
	}
	if r.fallback < 1 {
		r.fallback = FallbackColumns
	}

	return r
}

// Resolve returns the column count for width. See the package-level Resolve.
func (r *Resolver) Resolve(width float64) int {
	for i, threshold := range r.thresholds {
		if width <= threshold {
			return r.columns[i]
		}
	}

	return r.fallback
}
