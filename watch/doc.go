// Package watch provides types.WidthSource implementations that feed width
// signals into a masonry.Controller.
//
//   - NATS: widths published on a NATS subject by rendering glue
//   - Terminal: the column count of a terminal, re-read on every resize
//
// Both are attached with Controller.Watch, which releases them on Stop.
package watch
