// Package types provides core type definitions and interfaces for the masonry library.
//
// This package contains shared types that are used across multiple packages in the
// library. By keeping these types in a separate package, we avoid import cycles
// between the root masonry package and its implementations.
//
// Key types:
//   - Item, Columns, Layout: Layout data model
//   - Strategy, Distributor, HeightProvider: Column placement
//   - ItemSource, WidthSource, LayoutPublisher: Boundary collaborators
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
