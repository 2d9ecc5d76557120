package retry

import "context"

// Result carries the terminal outcome of an asynchronous value-producing
// call.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs op asynchronously with full retry, backoff, and breaker semantics.
//
// The returned channel is buffered and receives exactly one value: the
// terminal outcome of the call. Backoff suspensions park on the shared
// scheduler's timers; no worker is dedicated to the whole retry sequence
// beyond the goroutine executing attempts, and exactly one attempt is in
// flight at a time. Concurrent Go calls run independent attempt sequences
// against the shared breaker.
func (e *Engine) Go(ctx context.Context, op func() error) <-chan error {
	ch := make(chan error, 1)

	go func() {
		ch <- e.Do(ctx, op)
	}()

	return ch
}

// GoCall is the value-producing form of Go. The returned channel receives
// exactly one Result holding the eventual success value or the terminal
// error.
func GoCall[T any](ctx context.Context, e *Engine, op func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	go func() {
		value, err := Call(ctx, e, op)
		ch <- Result[T]{Value: value, Err: err}
	}()

	return ch
}
