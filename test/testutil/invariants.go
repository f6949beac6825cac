package testutil

import (
	"fmt"
	"testing"

	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/types"
)

// CheckLayout verifies the distribution invariants of layout against items:
//   - len(Columns) == ColumnCount >= 1
//   - every item appears in exactly one column
//   - items keep their original relative order inside each column
//
// Returns:
//   - error: Description of the first violated invariant, nil if consistent
func CheckLayout(items []types.Item, layout types.Layout) error {
	if layout.ColumnCount < 1 {
		return fmt.Errorf("column count %d < 1", layout.ColumnCount)
	}
	if len(layout.Columns) != layout.ColumnCount {
		return fmt.Errorf("%d columns present, want %d", len(layout.Columns), layout.ColumnCount)
	}

	position := make(map[string]int, len(items))
	for i, item := range items {
		position[item.ID] = i
	}

	seen := make(map[string]struct{}, len(items))
	for c, col := range layout.Columns {
		last := -1
		for _, item := range col {
			pos, ok := position[item.ID]
			if !ok {
				return fmt.Errorf("column %d holds unknown item %q", c, item.ID)
			}
			if _, dup := seen[item.ID]; dup {
				return fmt.Errorf("item %q placed more than once", item.ID)
			}
			if pos <= last {
				return fmt.Errorf("column %d breaks original order at item %q", c, item.ID)
			}
			seen[item.ID] = struct{}{}
			last = pos
		}
	}

	if len(seen) != len(items) {
		return fmt.Errorf("%d of %d items placed", len(seen), len(items))
	}

	return nil
}

// AssertLayoutConsistent fails the test if layout violates the distribution
// invariants or its column count differs from what table resolves for its width.
func AssertLayoutConsistent(t *testing.T, items []types.Item, table breakpoint.Table, layout types.Layout) {
	t.Helper()

	if err := CheckLayout(items, layout); err != nil {
		t.Fatalf("inconsistent layout (version %d): %v", layout.Version, err)
	}
	if want := breakpoint.Resolve(layout.Width, table); layout.ColumnCount != want {
		t.Fatalf("layout for width %v has %d columns, table resolves %d", layout.Width, layout.ColumnCount, want)
	}
}
