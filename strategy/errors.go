package strategy

import (
	"fmt"

	"github.com/brokenalarms/astro-masonry/types"
)

// checkColumnCount returns an error wrapping types.ErrInvalidColumnCount when
// columnCount cannot hold a layout.
func checkColumnCount(columnCount int) error {
	if columnCount < 1 {
		return fmt.Errorf("%w: got %d", types.ErrInvalidColumnCount, columnCount)
	}

	return nil
}

// emptyColumns allocates columnCount empty, non-nil columns.
func emptyColumns(columnCount, itemHint int) types.Columns {
	perColumn := itemHint/columnCount + 1
	cols := make(types.Columns, columnCount)
	for i := range cols {
		cols[i] = make([]types.Item, 0, perColumn)
	}

	return cols
}
