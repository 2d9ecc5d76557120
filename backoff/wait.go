package backoff

import (
	"context"
	"fmt"
	"time"
)

// WaitContext sleeps for the specified duration but respects context
// cancellation. Returns nil if the sleep completes, or a wrapped context error
// if the context is cancelled. Returns immediately (nil) for zero or negative
// durations.
func WaitContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context done: %w", ctx.Err())
	}
}
