package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Allow while the breaker is open and the open
// duration has not yet elapsed. No attempt has been made and no state changed.
var ErrOpen = errors.New("circuitbreaker: circuit open")

// State represents circuit breaker state.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// StateChangeFunc is notified when the breaker trips open or re-admits after
// the open duration. Callbacks run inline under no lock; panics are recovered
// by the caller of the breaker, not here, so implementations should be cheap
// and non-blocking.
type StateChangeFunc func(from, to State)

// Breaker is a consecutive-failure circuit breaker shared by every call made
// through one engine instance.
//
// All fields form a single mutual-exclusion domain: the permission check and
// the mutation on each attempt outcome are atomic with respect to concurrent
// callers. Trip and counter reset are one transaction.
type Breaker struct {
	mu          sync.Mutex
	open        bool
	lastTrip    time.Time
	consecutive int

	threshold int
	openFor   time.Duration
	now       func() time.Time
	onChange  StateChangeFunc
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithNow overrides the clock, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(b *Breaker) {
		b.now = now
	}
}

// WithStateChange registers a callback invoked on open/half-open transitions.
func WithStateChange(fn StateChangeFunc) Option {
	return func(b *Breaker) {
		b.onChange = fn
	}
}

// New creates a closed Breaker that trips after threshold consecutive
// failures and rejects callers for openFor afterwards. threshold must be
// positive; values <= 0 are treated as 1.
func New(threshold int, openFor time.Duration, opts ...Option) *Breaker {
	if threshold <= 0 {
		threshold = 1
	}

	b := &Breaker{
		threshold: threshold,
		openFor:   openFor,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Allow reports whether a call may proceed.
//
// Closed breakers always admit. An open breaker whose open duration has
// elapsed clears its open flag and admits the caller as the half-open probe;
// otherwise Allow fails fast with ErrOpen. The transition is evaluated lazily
// here, never by a background timer.
//
// A nil receiver always admits.
func (b *Breaker) Allow() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()

	if !b.open {
		b.mu.Unlock()
		return nil
	}

	if b.now().Sub(b.lastTrip) > b.openFor {
		b.open = false
		onChange := b.onChange
		b.mu.Unlock()

		if onChange != nil {
			onChange(StateOpen, StateHalfOpen)
		}

		return nil
	}

	b.mu.Unlock()

	return ErrOpen
}

// Success records a successful attempt, resetting the consecutive failure
// counter. A nil receiver is a no-op.
func (b *Breaker) Success() {
	if b == nil {
		return
	}

	b.mu.Lock()
	b.consecutive = 0
	b.mu.Unlock()
}

// Failure records a failed attempt and reports whether this failure tripped
// the breaker. Tripping records the trip timestamp and resets the consecutive
// counter in the same transaction. A nil receiver is a no-op reporting false.
func (b *Breaker) Failure() bool {
	if b == nil {
		return false
	}

	b.mu.Lock()

	b.consecutive++
	if b.consecutive < b.threshold {
		b.mu.Unlock()
		return false
	}

	b.open = true
	b.lastTrip = b.now()
	b.consecutive = 0
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange(StateClosed, StateOpen)
	}

	return true
}

// State returns the current breaker state. An open breaker whose open
// duration has elapsed is reported as half-open without mutating anything;
// the actual transition happens on the next Allow. A nil receiver reports
// closed.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return StateClosed
	}

	if b.now().Sub(b.lastTrip) > b.openFor {
		return StateHalfOpen
	}

	return StateOpen
}

// ConsecutiveFailures returns the current consecutive failure count.
func (b *Breaker) ConsecutiveFailures() int {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.consecutive
}
