// Package backoff provides Fibonacci retry delay ladders with bounded jitter.
//
// Use Fibonacci to precompute the base delay for each attempt, Jitter to
// perturb a base delay before sleeping, and WaitContext to wait while
// respecting cancellation and deadlines.
package backoff
