package integration_test

import (
	"testing"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/test/testutil"
)

// TestInvariants_Smoke ensures the invariant helper is wired and usable in integration tests.
func TestInvariants_Smoke(t *testing.T) {
	items := testutil.Items(10, 7)
	table := testutil.GalleryTable()

	for _, kind := range []masonry.Strategy{
		masonry.StrategySequential,
		masonry.StrategyFewestItems,
		masonry.StrategyShortestHeight,
	} {
		layout, err := masonry.Build(items, 700, table, kind, nil)
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertLayoutConsistent(t, items, table, layout)
	}
}
