// Package scheduler provides a shared, cancellable delay-timer facility for
// suspending retry loops between attempts.
//
// Any number of concurrent callers may sleep through one Scheduler; each sleep
// parks on its own timer rather than a dedicated worker. Shutdown stops
// accepting new sleeps, waits for in-flight sleeps within the caller's
// deadline, then force-cancels whatever remains so shutdown never hangs.
package scheduler
