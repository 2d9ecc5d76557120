package retry

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New for out-of-range construction
// parameters or a delay ladder that overflows.
var ErrInvalidConfig = errors.New("retry: invalid configuration")

// ErrExhausted matches any *ExhaustedError via errors.Is.
var ErrExhausted = errors.New("retry: all attempts failed")

// ExhaustedError is the terminal error for a call that failed on every
// allowed attempt. It wraps only the last underlying failure; per-attempt
// detail is the Listener's channel, not the error chain.
type ExhaustedError struct {
	// Attempts is the number of invocations performed.
	Attempts int

	// Err is the failure returned by the final attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry: all %d attempts failed: %v", e.Attempts, e.Err)
}

// Unwrap exposes the final attempt's failure to errors.Is/As.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrExhausted so callers can match without the concrete
// type.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
