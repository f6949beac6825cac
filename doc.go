// Package masonry decides how a responsive column layout arranges an ordered
// list of items.
//
// Given a container width and a breakpoint table, masonry resolves a column
// count; given the items and that count, it distributes the items into columns
// with one of three strategies. A Controller keeps the layout in sync with a
// stream of width signals, redistributing only when the column count changes.
// Rendering is left to the caller.
//
// # Quick Start
//
// One-shot layout:
//
//	import (
//	    "github.com/brokenalarms/astro-masonry"
//	    "github.com/brokenalarms/astro-masonry/breakpoint"
//	)
//
//	table := breakpoint.New(3, map[float64]int{600: 1, 900: 2})
//	layout, err := masonry.Build(items, 750, table, masonry.StrategyFewestItems, nil)
//
// Live layout:
//
//	cfg := masonry.DefaultConfig()
//	cfg.Breakpoints = table
//	cfg.Options.SortByHeight = true
//
//	ctrl, err := masonry.NewController(&cfg, source.NewStatic(items))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctrl.Start(ctx, 750); err != nil {
//	    log.Fatal(err)
//	}
//	defer ctrl.Stop(context.Background())
//
//	ch, unsubscribe := ctrl.Subscribe()
//	defer unsubscribe()
//	go func() {
//	    for layout := range ch {
//	        render(layout.Columns)
//	    }
//	}()
//
//	ctrl.Notify(1280) // on every resize
//
// # Strategies
//
//   - Sequential: item i goes to column i mod c
//   - FewestItems: each item extends the column with the fewest items
//   - ShortestHeight: each item extends the column with the least accumulated height
//
// The Config options select one: SortByHeight picks ShortestHeight,
// HorizontalOrder picks FewestItems, neither picks Sequential. SortByHeight wins
// when both are set.
//
// # Breakpoints
//
// A breakpoint table maps maximum widths (inclusive) to column counts plus a
// default for wider containers:
//
//	breakpoints:
//	  default: 3
//	  "600": 1
//	  "900": 2
//
// Malformed table input falls back to {default: 2} and is reported as a warning.
// A non-positive default is rejected when the configuration is loaded.
//
// # Throttling
//
// Width signals are throttled with a leading edge and one coalesced trailing
// evaluation per window (Config.ThrottleWindow, 100ms by default).
//
// See the cmd/masonry command for a complete working example.
package masonry
