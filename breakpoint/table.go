package breakpoint

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/brokenalarms/astro-masonry/types"
)

// FallbackColumns is the column count of the fallback table used when breakpoint
// input cannot be read.
const FallbackColumns = 2

// DefaultKey is the reserved key holding the default column count.
const DefaultKey = "default"

// Table is a breakpoint table: width thresholds mapped to column counts plus a
// default used when the width exceeds every threshold.
//
// Thresholds are held in a map, so each threshold appears once; when the same
// threshold is declared twice in configuration text the last declaration wins.
type Table struct {
	// Thresholds maps a maximum width (inclusive) to a column count.
	Thresholds map[float64]int

	// Default is the column count used when no threshold matches. Must be >= 1.
	Default int

	// malformed records why decoded input was replaced by the fallback table.
	malformed error
}

// New creates a table with the given default and thresholds.
//
// The thresholds map is copied.
func New(defaultColumns int, thresholds map[float64]int) Table {
	t := Table{Default: defaultColumns, Thresholds: make(map[float64]int, len(thresholds))}
	for k, v := range thresholds {
		t.Thresholds[k] = v
	}

	return t
}

// Fallback returns the table used in place of malformed input: {default: 2}.
func Fallback() Table {
	return Table{Default: FallbackColumns, Thresholds: map[float64]int{}}
}

// Malformed returns the decoding error that caused this table to be replaced by
// the fallback table, or nil if the table was read as written.
func (t Table) Malformed() error {
	return t.malformed
}

// IsZero reports whether t is the zero Table, i.e. no table was configured.
// Decoded and constructed tables always carry a non-nil Thresholds map, so an
// explicit {default: 0} is not zero.
func (t Table) IsZero() bool {
	return t.Default == 0 && t.Thresholds == nil && t.malformed == nil
}

// Validate checks the table invariants.
//
// Rules:
//   - Default >= 1
//   - every threshold is a finite, non-negative number
//   - every mapped column count is >= 1
//
// Returns:
//   - error: ErrInvalidBreakpoints wrapped with the offending value, nil if valid
func (t Table) Validate() error {
	if t.Default < 1 {
		return fmt.Errorf("%w: default column count must be >= 1, got %d", types.ErrInvalidBreakpoints, t.Default)
	}

	for _, threshold := range t.sortedThresholds() {
		if threshold < 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return fmt.Errorf("%w: threshold must be a non-negative number, got %v", types.ErrInvalidBreakpoints, threshold)
		}
		if cols := t.Thresholds[threshold]; cols < 1 {
			return fmt.Errorf("%w: threshold %v maps to %d columns, must be >= 1", types.ErrInvalidBreakpoints, threshold, cols)
		}
	}

	return nil
}

// Len returns the number of thresholds (excluding the default).
func (t Table) Len() int {
	return len(t.Thresholds)
}

// Equal reports whether two tables hold the same thresholds and default.
func (t Table) Equal(other Table) bool {
	if t.Default != other.Default || len(t.Thresholds) != len(other.Thresholds) {
		return false
	}
	for k, v := range t.Thresholds {
		if ov, ok := other.Thresholds[k]; !ok || ov != v {
			return false
		}
	}

	return true
}

// String renders the table in ascending threshold order, e.g. "{600:1 900:2 default:3}".
func (t Table) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for _, threshold := range t.sortedThresholds() {
		sb.WriteString(strconv.FormatFloat(threshold, 'f', -1, 64))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(t.Thresholds[threshold]))
		sb.WriteByte(' ')
	}
	sb.WriteString(DefaultKey)
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(t.Default))
	sb.WriteByte('}')

	return sb.String()
}

// sortedThresholds returns the threshold keys in ascending order.
func (t Table) sortedThresholds() []float64 {
	keys := make([]float64, 0, len(t.Thresholds))
	for k := range t.Thresholds {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
