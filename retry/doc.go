// Package retry executes fallible operations with Fibonacci backoff, bounded
// jitter, and an integrated circuit breaker.
//
// An Engine wraps any failure-prone call without that call needing retry
// awareness. Construct one with New, then run operations through Do (run for
// effect), Call (call for value), or the asynchronous Go/GoCall variants.
// Every call made through one Engine shares that engine's circuit breaker;
// independent engines never coordinate.
//
// Per-attempt failures stay inside the engine and surface only through the
// optional Listener and the injected logger. The caller sees exactly one
// terminal outcome: success, *ExhaustedError, circuitbreaker.ErrOpen, or a
// cancellation error. Cancellation during a backoff delay is always terminal.
package retry
