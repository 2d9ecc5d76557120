package backoff

import (
	mrand "math/rand"
	"time"
)

// Jitter perturbs a base delay by a uniformly random fraction in
// [-factor, factor], drawn independently per call.
//
// The result never drops below 1, so a jittered delay cannot degenerate to
// zero or a negative duration. Zero or negative base delays and negative
// factors return the floor and the base delay unchanged respectively.
//
// The top-level math/rand/v2 generator is safe for concurrent use, so Jitter
// may be called from parallel retry loops without coordination.
func Jitter(delay time.Duration, factor float64) time.Duration {
	if delay <= 0 {
		return 1
	}

	if factor <= 0 {
		return delay
	}

	u := (mrand.Float64()*2 - 1) * factor

	jittered := time.Duration(float64(delay) * (1 + u))
	if jittered < 1 {
		return 1
	}

	return jittered
}
