// Package metrics provides Prometheus instrumentation for the retry engine.
//
// All methods on *Metrics are nil-safe; pass nil when no instrumentation is
// desired (e.g., in unit tests that don't care about metrics output).
package metrics
