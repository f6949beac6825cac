// Package publisher writes built layouts to a NATS JetStream KeyValue bucket so
// that rendering glue in other processes can watch and apply them.
//
// Each controller publishes under one key, "<prefix>.<name>", holding a JSON
// Snapshot of its latest layout. Versions stay monotonic across restarts
// because KV implements types.VersionedPublisher: the controller seeds its
// version counter from HighestVersion on Start.
package publisher
