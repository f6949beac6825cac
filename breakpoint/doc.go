// Package breakpoint maps a width to a column count using an ordered breakpoint table.
//
// A Table holds width thresholds, each mapped to a column count, plus a mandatory
// default. Resolution walks the thresholds in ascending order and returns the
// column count of the first threshold the width does not exceed:
//
//	table := breakpoint.New(3, map[float64]int{600: 1, 900: 2})
//	breakpoint.Resolve(600, table)  // 1 (inclusive boundary)
//	breakpoint.Resolve(750, table)  // 2
//	breakpoint.Resolve(1200, table) // 3 (default)
//
// Tables are usually read from configuration text. Parse accepts JSON or YAML
// mappings; ParseOrFallback never fails on malformed input and instead returns
// the fallback table {default: 2}, reporting the problem through the logger.
package breakpoint
