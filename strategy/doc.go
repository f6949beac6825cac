// Package strategy provides the built-in column distributors.
//
// A distributor places an ordered item list into a fixed number of columns.
// Every call is a full rebuild: the previous layout is never consulted, so the
// result depends only on the items, the column count and (for ShortestHeight)
// the height provider.
//
// The package includes three distributors:
//
//   - Sequential: item i goes to column i mod c (horizontal reading order)
//   - FewestItems: each item goes to the column holding the fewest items
//   - ShortestHeight: each item goes to the column with the least accumulated height
//
// # Choosing a distributor
//
// Sequential:
//   - Use when left-to-right reading order matters more than column balance
//   - Purely index based, never looks at item content
//
// FewestItems:
//   - Keeps item counts within one of each other across columns
//   - Placement matches Sequential for a single pass, but remains correct when
//     columns are pre-seeded by a custom distributor wrapping it
//
// ShortestHeight:
//   - Balances visual height; needs a types.HeightProvider
//   - SumHeights is the default provider and uses Item.Height
//
// Ties are always broken toward the lowest column index.
//
// Custom distributors can be implemented by satisfying the types.Distributor interface.
package strategy
