package stress_test

import (
	"fmt"
	"testing"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/test/testutil"
)

// BenchmarkBuild measures a full rebuild at several item counts and strategies.
func BenchmarkBuild(b *testing.B) {
	table := testutil.GalleryTable()

	for _, n := range []int{100, 1000, 10000} {
		items := testutil.Items(n, 1)
		for _, kind := range []masonry.Strategy{
			masonry.StrategySequential,
			masonry.StrategyFewestItems,
			masonry.StrategyShortestHeight,
		} {
			b.Run(fmt.Sprintf("%s/%d", kind, n), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					if _, err := masonry.Build(items, 1280, table, kind, nil); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
