package retry

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/backoff"
	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/circuitbreaker"
	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/log"
	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/metrics"
	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/scheduler"
)

// Engine drives the attempt loop: it consults the circuit breaker, invokes
// the operation, applies the jittered Fibonacci delay between attempts, and
// converges to success or exhaustion.
//
// The delay ladder is computed once at construction and never mutated; the
// breaker is the only shared mutable state. Multiple callers may run calls
// through one Engine concurrently, each with its own attempt sequence.
type Engine struct {
	cfg     Config
	ladder  []time.Duration
	breaker *circuitbreaker.Breaker

	sched    *scheduler.Scheduler
	ownSched bool

	listener   Listener
	logger     log.Logger
	metrics    *metrics.Metrics
	breakerNow func() time.Time

	id string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger injects the logger used for attempt outcomes and breaker
// transitions. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithListener registers the retry lifecycle observer.
func WithListener(listener Listener) Option {
	return func(e *Engine) {
		e.listener = listener
	}
}

// WithScheduler shares a delay scheduler across engines. A shared scheduler
// is not shut down by Engine.Shutdown; its owner closes it.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithMetrics attaches a Prometheus collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithBreakerClock overrides the breaker's clock, for deterministic tests.
func WithBreakerClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.breakerNow = now
	}
}

// New validates cfg, precomputes the Fibonacci delay ladder, and returns an
// Engine with a closed breaker. Construction is the only point where
// configuration errors can surface; a returned Engine never fails on
// parameters.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg = cfg.withDefaults()

	e := &Engine{
		cfg:    cfg,
		logger: log.NewNop(),
		id:     uuid.NewString(),
	}

	for _, opt := range opts {
		opt(e)
	}

	ladder, err := backoff.Fibonacci(cfg.InitialDelay, cfg.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e.ladder = ladder

	if cfg.FailureThreshold > 0 {
		bopts := []circuitbreaker.Option{
			circuitbreaker.WithStateChange(e.onBreakerChange),
		}
		if e.breakerNow != nil {
			bopts = append(bopts, circuitbreaker.WithNow(e.breakerNow))
		}

		e.breaker = circuitbreaker.New(cfg.FailureThreshold, cfg.CircuitOpenDuration, bopts...)
	}

	if e.sched == nil {
		e.sched = scheduler.New()
		e.ownSched = true
	}

	return e, nil
}

// Do runs op until it succeeds, the attempt budget is spent, or the call is
// cancelled during a backoff delay.
//
// The breaker is consulted once at entry: while it is open,
// circuitbreaker.ErrOpen is returned with zero attempts made and no delay
// incurred. Per-attempt failures are not returned; the terminal outcome is
// nil, a *ExhaustedError wrapping the last failure, or a wrapped cancellation
// error.
func (e *Engine) Do(ctx context.Context, op func() error) error {
	if err := e.breaker.Allow(); err != nil {
		e.metrics.RecordRejected()
		e.logger.Warnf("engine %s: circuit open, rejecting call", e.id)

		return err
	}

	var lastErr error

	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		err := op()
		if err == nil {
			e.breaker.Success()
			e.metrics.RecordAttempt("ok")

			if e.breaker != nil {
				e.metrics.SetBreakerState(string(e.breaker.State()))
			}

			e.logger.Infof("engine %s: operation succeeded on attempt %d", e.id, attempt+1)

			return nil
		}

		lastErr = err
		e.metrics.RecordAttempt("error")
		e.logger.Warnf("engine %s: attempt %d failed: %v", e.id, attempt+1, err)

		// May trip the breaker; the trip is silent to this caller, which
		// still runs out its own attempt budget.
		e.breaker.Failure()

		if attempt == e.cfg.MaxAttempts-1 {
			break
		}

		delay := backoff.Jitter(e.ladder[attempt], e.cfg.JitterFactor)
		e.metrics.RecordBackoff(delay)
		e.notifyBeforeRetry(attempt, delay)
		e.logger.Debugf("engine %s: waiting %v before attempt %d", e.id, delay, attempt+2)

		if serr := e.sched.Sleep(ctx, delay); serr != nil {
			e.metrics.RecordCancelled()
			e.logger.Warnf("engine %s: backoff interrupted: %v", e.id, serr)

			return fmt.Errorf("retry: backoff interrupted: %w", serr)
		}
	}

	exhausted := &ExhaustedError{Attempts: e.cfg.MaxAttempts, Err: lastErr}
	e.metrics.RecordExhausted()
	e.logger.Errorf("engine %s: %v", e.id, exhausted)
	e.notifyRetryFailure(exhausted)

	return exhausted
}

// Call runs op with the same retry, backoff, and breaker semantics as Do and
// additionally threads the produced value back to the caller on success.
func Call[T any](ctx context.Context, e *Engine, op func() (T, error)) (T, error) {
	var result T

	err := e.Do(ctx, func() error {
		value, err := op()
		if err != nil {
			return err
		}

		result = value

		return nil
	})
	if err != nil {
		var zero T

		return zero, err
	}

	return result, nil
}

// Delays returns a copy of the precomputed base delay ladder, one entry per
// attempt index, for diagnostic export.
func (e *Engine) Delays() []time.Duration {
	return slices.Clone(e.ladder)
}

// BreakerState reports the current circuit breaker state. Engines with the
// breaker disabled always report closed.
func (e *Engine) BreakerState() circuitbreaker.State {
	return e.breaker.State()
}

// Shutdown stops the engine's delay scheduler: pending backoff delays finish
// within ctx's deadline or are force-cancelled. Engines using a shared
// scheduler via WithScheduler leave it running for its owner.
func (e *Engine) Shutdown(ctx context.Context) error {
	if !e.ownSched {
		return nil
	}

	return e.sched.Shutdown(ctx)
}

// Close shuts the engine down with the scheduler's default grace period.
func (e *Engine) Close() error {
	if !e.ownSched {
		return nil
	}

	return e.sched.Close()
}

func (e *Engine) onBreakerChange(_, to circuitbreaker.State) {
	switch to {
	case circuitbreaker.StateOpen:
		e.logger.Errorf("engine %s: circuit breaker tripped, rejecting calls for %v", e.id, e.cfg.CircuitOpenDuration)
	case circuitbreaker.StateHalfOpen:
		e.logger.Infof("engine %s: circuit breaker half-open, admitting probe", e.id)
	case circuitbreaker.StateClosed:
		e.logger.Infof("engine %s: circuit breaker closed", e.id)
	}

	e.metrics.SetBreakerState(string(to))
}

func (e *Engine) notifyBeforeRetry(attempt int, delay time.Duration) {
	if e.listener == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("engine %s: BeforeRetry listener panic: %v", e.id, r)
		}
	}()

	e.listener.BeforeRetry(attempt, delay)
}

func (e *Engine) notifyRetryFailure(err error) {
	if e.listener == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("engine %s: OnRetryFailure listener panic: %v", e.id, r)
		}
	}()

	e.listener.OnRetryFailure(err)
}
