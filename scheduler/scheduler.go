package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrClosed is returned by Sleep when the scheduler has been shut down, either
// before the sleep started or because shutdown force-cancelled it mid-delay.
var ErrClosed = errors.New("scheduler: shut down")

// defaultGrace bounds Close's wait for in-flight sleeps.
const defaultGrace = 5 * time.Second

// Scheduler is a shared delay-timer facility. The zero value is not usable;
// construct with New.
type Scheduler struct {
	mu     sync.Mutex
	closed bool
	quit   chan struct{}
	wg     sync.WaitGroup
}

// New creates a running Scheduler.
func New() *Scheduler {
	return &Scheduler{
		quit: make(chan struct{}),
	}
}

// Sleep suspends the caller for d.
//
// It returns nil once the delay elapses, a wrapped context error if ctx is
// cancelled first, or ErrClosed if the scheduler is shut down before or
// during the sleep. Zero and negative durations still check for shutdown but
// otherwise return immediately.
func (s *Scheduler) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()

	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler: context done: %w", ctx.Err())
	case <-s.quit:
		return ErrClosed
	}
}

// Shutdown stops the scheduler.
//
// New sleeps are rejected immediately. In-flight sleeps are allowed to finish
// until ctx expires, at which point they are force-cancelled (they return
// ErrClosed) and Shutdown still waits for them to drain before returning
// ctx's error. Shutdown is idempotent.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		close(s.quit)
		<-done

		return fmt.Errorf("scheduler: forced shutdown: %w", ctx.Err())
	}
}

// Close shuts the scheduler down with the default grace period.
func (s *Scheduler) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultGrace)
	defer cancel()

	return s.Shutdown(ctx)
}
