package circuitbreaker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for deterministic open-duration tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestBreaker_StartsClosed(t *testing.T) {
	t.Parallel()

	b := New(3, time.Minute)

	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Allow())
	assert.Zero(t, b.ConsecutiveFailures())
}

func TestBreaker_TripsAtThreshold(t *testing.T) {
	t.Parallel()

	b := New(3, time.Minute)

	assert.False(t, b.Failure())
	assert.False(t, b.Failure())
	assert.Equal(t, 2, b.ConsecutiveFailures())

	assert.True(t, b.Failure(), "third consecutive failure should trip")
	assert.Equal(t, StateOpen, b.State())

	// Trip and counter reset are one transaction.
	assert.Zero(t, b.ConsecutiveFailures())
}

func TestBreaker_RejectsWhileOpen(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := New(1, time.Minute, WithNow(clock.Now))

	require.True(t, b.Failure())

	err := b.Allow()
	require.ErrorIs(t, err, ErrOpen)

	// Rejection changes no state.
	assert.Equal(t, StateOpen, b.State())

	clock.Advance(30 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrOpen)
}

func TestBreaker_HalfOpenAfterDuration(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := New(1, time.Minute, WithNow(clock.Now))

	require.True(t, b.Failure())
	require.Equal(t, StateOpen, b.State())

	clock.Advance(time.Minute + time.Second)

	// Reported half-open before any permission check mutates state.
	assert.Equal(t, StateHalfOpen, b.State())

	// The lazy transition admits the probe.
	require.NoError(t, b.Allow())
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_SuccessResetsCounter(t *testing.T) {
	t.Parallel()

	b := New(5, time.Minute)

	b.Failure()
	b.Failure()
	b.Failure()
	require.Equal(t, 3, b.ConsecutiveFailures())

	b.Success()
	assert.Zero(t, b.ConsecutiveFailures())

	// Counter restarts from scratch after a success.
	for i := 0; i < 4; i++ {
		assert.False(t, b.Failure())
	}
	assert.True(t, b.Failure())
}

func TestBreaker_ReTripsAfterProbeFailures(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := New(2, time.Minute, WithNow(clock.Now))

	b.Failure()
	require.True(t, b.Failure())

	clock.Advance(2 * time.Minute)
	require.NoError(t, b.Allow())

	// Post-probe failures count from zero again.
	assert.False(t, b.Failure())
	assert.True(t, b.Failure())
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_StateChangeCallback(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()

	var (
		mu          sync.Mutex
		transitions [][2]State
	)

	b := New(1, time.Minute,
		WithNow(clock.Now),
		WithStateChange(func(from, to State) {
			mu.Lock()
			transitions = append(transitions, [2]State{from, to})
			mu.Unlock()
		}),
	)

	b.Failure()
	clock.Advance(2 * time.Minute)
	require.NoError(t, b.Allow())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, transitions, 2)
	assert.Equal(t, [2]State{StateClosed, StateOpen}, transitions[0])
	assert.Equal(t, [2]State{StateOpen, StateHalfOpen}, transitions[1])
}

func TestBreaker_NilReceiverIsNoOp(t *testing.T) {
	t.Parallel()

	var b *Breaker

	assert.NoError(t, b.Allow())
	assert.False(t, b.Failure())
	assert.NotPanics(t, func() { b.Success() })
	assert.Equal(t, StateClosed, b.State())
	assert.Zero(t, b.ConsecutiveFailures())
}

func TestBreaker_ThresholdFloor(t *testing.T) {
	t.Parallel()

	b := New(0, time.Minute)
	assert.True(t, b.Failure(), "threshold <= 0 behaves as 1")
}

func TestBreaker_ConcurrentRejectionIsConsistent(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b := New(1, time.Hour, WithNow(clock.Now))
	require.True(t, b.Failure())

	var wg sync.WaitGroup

	const callers = 32

	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			errs[i] = b.Allow()
		}(i)
	}

	wg.Wait()

	// No caller slips through while the breaker holds.
	for i, err := range errs {
		assert.ErrorIs(t, err, ErrOpen, "caller %d", i)
	}
}

func TestBreaker_ConcurrentFailuresTripExactlyOnce(t *testing.T) {
	t.Parallel()

	b := New(100, time.Minute)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		trips int
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if b.Failure() {
				mu.Lock()
				trips++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, trips)
	assert.Equal(t, StateOpen, b.State())
}
