package retry

import "time"

// Listener observes a call's retry lifecycle without altering control flow.
//
// BeforeRetry runs just before each retry delay begins, with the 0-based index
// of the attempt that failed and the jittered delay about to be applied.
// OnRetryFailure runs exactly once per call whose attempt budget is spent,
// with the terminal *ExhaustedError.
//
// Callbacks are panic-isolated by the engine; a panicking listener is logged
// and ignored, never corrupting engine state.
type Listener interface {
	BeforeRetry(attempt int, delay time.Duration)
	OnRetryFailure(err error)
}

// NopListener is a Listener that ignores all events.
type NopListener struct{}

// BeforeRetry drops the event.
func (NopListener) BeforeRetry(_ int, _ time.Duration) {}

// OnRetryFailure drops the event.
func (NopListener) OnRetryFailure(_ error) {}
