package types

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Item is an opaque handle for one piece of visual content.
//
// The layout core never inspects an item beyond its identity. Height is an
// optional, externally known rendered height used by the default height provider
// of the shortest-height strategy; it is ignored by the other strategies.
type Item struct {
	// ID identifies the item to the rendering layer (e.g. a DOM node key).
	ID string `json:"id" yaml:"id" toml:"id"`

	// Height is the known rendered height of the item (0 when unknown).
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height"`
}

// Columns is a column-index to ordered-item-sequence mapping.
//
// Index i holds the items assigned to column i, in original relative order.
// Every column in [0, len(Columns)) is present, even when empty.
type Columns [][]Item

// ItemCount returns the total number of items across all columns.
func (c Columns) ItemCount() int {
	total := 0
	for _, col := range c {
		total += len(col)
	}

	return total
}

// Clone returns a deep copy so that callers can mutate the result freely.
func (c Columns) Clone() Columns {
	if c == nil {
		return nil
	}

	out := make(Columns, len(c))
	for i, col := range c {
		out[i] = make([]Item, len(col))
		copy(out[i], col)
	}

	return out
}

// Layout is a complete, versioned column assignment produced by the controller.
//
// Layouts are immutable once published: a new width that changes the column
// count produces a brand new Layout with a higher version.
type Layout struct {
	// Version is a monotonically increasing layout version (0 = no layout yet).
	Version int64 `json:"version"`

	// Width is the width that produced this layout.
	Width float64 `json:"width"`

	// ColumnCount is the resolved number of columns (always >= 1 for a built layout).
	ColumnCount int `json:"columnCount"`

	// Strategy is the placement strategy used to build Columns.
	Strategy Strategy `json:"strategy"`

	// Columns holds the items per column.
	Columns Columns `json:"columns"`
}

// IsZero reports whether no layout has been built yet.
func (l Layout) IsZero() bool {
	return l.Version == 0 && l.ColumnCount == 0
}

// Fingerprint returns a hash of the column structure (column boundaries and item IDs).
//
// Two layouts with the same fingerprint place the same items in the same columns
// in the same order, regardless of version or width.
//
// Returns:
//   - uint64: xxh3 hash of the column structure
func (l Layout) Fingerprint() uint64 {
	h := xxh3.New()

	var ib [8]byte
	for i, col := range l.Columns {
		binary.LittleEndian.PutUint64(ib[:], uint64(i)) //nolint:gosec // column index is never negative
		_, _ = h.Write(ib[:])
		for _, item := range col {
			_, _ = h.WriteString(item.ID)
			_, _ = h.Write([]byte{0})
		}
	}

	return h.Sum64()
}
