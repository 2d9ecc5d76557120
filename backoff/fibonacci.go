package backoff

import (
	"errors"
	"fmt"
	"time"
)

// ErrDelayOverflow indicates that summing the ladder exceeded the int64 range.
var ErrDelayOverflow = errors.New("backoff: fibonacci delay overflows time.Duration")

// ErrInvalidInitialDelay indicates a non-positive initial delay.
var ErrInvalidInitialDelay = errors.New("backoff: initial delay must be positive")

// ErrInvalidAttempts indicates a non-positive attempt count.
var ErrInvalidAttempts = errors.New("backoff: attempts must be positive")

// Fibonacci precomputes the base delay for each attempt index.
//
// The ladder is seeded twice with initial and follows the classic recurrence:
// ladder[0] = ladder[1] = initial, ladder[i] = ladder[i-1] + ladder[i-2].
// For attempts == 1 only ladder[0] exists.
//
// Overflow while summing is reported as ErrDelayOverflow rather than wrapping
// silently, so misconfiguration fails at construction and not mid-retry.
func Fibonacci(initial time.Duration, attempts int) ([]time.Duration, error) {
	if initial <= 0 {
		return nil, ErrInvalidInitialDelay
	}

	if attempts <= 0 {
		return nil, ErrInvalidAttempts
	}

	ladder := make([]time.Duration, attempts)
	ladder[0] = initial

	if attempts == 1 {
		return ladder, nil
	}

	ladder[1] = initial

	for i := 2; i < attempts; i++ {
		sum := ladder[i-1] + ladder[i-2]
		if sum < ladder[i-1] {
			return nil, fmt.Errorf("%w: at attempt %d", ErrDelayOverflow, i)
		}

		ladder[i] = sum
	}

	return ladder, nil
}
