package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/types"
)

// Items returns n items "item-000", "item-001"... with pseudo-random heights
// in [50, 550) derived from seed, so runs are reproducible.
func Items(n int, seed uint64) []types.Item {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // test fixture

	items := make([]types.Item, n)
	for i := range items {
		items[i] = types.Item{
			ID:     fmt.Sprintf("item-%03d", i),
			Height: 50 + float64(rng.IntN(500)),
		}
	}

	return items
}

// GalleryTable is a typical responsive table: 1 column up to 480, 2 up to 768,
// 3 up to 1024, otherwise 4.
func GalleryTable() breakpoint.Table {
	return breakpoint.New(4, map[float64]int{480: 1, 768: 2, 1024: 3})
}
