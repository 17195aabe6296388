// Package history persists validation run records so scoring can report
// trends over a diagram's lifetime.
//
// Three backends implement the same Store interface: an in-process memory
// store for embedding and tests, a Redis store that keeps one capped list
// per diagram, and a SQLite store for durable single-node deployments. All
// of them serve runs newest first; callers that chart trends reverse the
// order themselves. NewStore selects a backend by name so deployments can
// switch through configuration alone.
package history
