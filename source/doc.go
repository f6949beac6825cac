// Package source provides built-in item source implementations.
//
// Item sources supply the ordered item list a controller lays out.
// The package includes:
//
//   - Static: Fixed in-memory list, replaceable with Update
//   - File: JSON, YAML or TOML item list read from disk on every ListItems
//
// Custom sources can be implemented by satisfying the types.ItemSource interface.
package source
