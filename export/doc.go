// Package export persists retry delay ladders as two-column CSV for
// diagnostics: an "Attempt,Delay(ms)" header followed by one row per attempt.
package export
