package retry

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxAllowedAttempts bounds the attempt budget; larger ladders stop being
// useful long before the summation overflows.
const maxAllowedAttempts = 30

// Recognized defaults applied by DefaultConfig.
const (
	defaultMaxAttempts         = 5
	defaultInitialDelay        = 100 * time.Millisecond
	defaultJitterFactor        = 0.1
	defaultFailureThreshold    = 5
	defaultCircuitOpenDuration = 60 * time.Second
)

// Config holds engine configuration. It is immutable after construction:
// parameters cannot be changed on a live Engine.
type Config struct {
	// MaxAttempts is the total number of invocations allowed per call, 1-30.
	MaxAttempts int `yaml:"maxAttempts"`

	// InitialDelay seeds the Fibonacci ladder. Must be positive.
	InitialDelay time.Duration `yaml:"initialDelay"`

	// JitterFactor is the fraction by which each delay is randomly perturbed.
	// Zero disables jitter; values below 1 are recommended.
	JitterFactor float64 `yaml:"jitterFactor"`

	// FailureThreshold is the number of consecutive failures that trips the
	// circuit breaker. Zero disables the breaker entirely.
	FailureThreshold int `yaml:"failureThreshold"`

	// CircuitOpenDuration is how long a tripped breaker rejects calls before
	// admitting a half-open probe. Defaults to 60s when the breaker is
	// enabled and no duration is given.
	CircuitOpenDuration time.Duration `yaml:"circuitOpenDuration"`
}

// DefaultConfig provides balanced settings for wrapping network calls.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:         defaultMaxAttempts,
		InitialDelay:        defaultInitialDelay,
		JitterFactor:        defaultJitterFactor,
		FailureThreshold:    defaultFailureThreshold,
		CircuitOpenDuration: defaultCircuitOpenDuration,
	}
}

// SimpleConfig reproduces the plain fixed-table retry loop: a one-second
// Fibonacci seed, no jitter, and no circuit breaker. It is the degenerate
// configuration of the same engine, not a second code path.
func SimpleConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Second,
	}
}

// AggressiveConfig trips fast and retries with a short seed, for calls where
// failing over quickly matters more than riding out a blip.
func AggressiveConfig() Config {
	return Config{
		MaxAttempts:         3,
		InitialDelay:        50 * time.Millisecond,
		JitterFactor:        0.2,
		FailureThreshold:    3,
		CircuitOpenDuration: 30 * time.Second,
	}
}

// Validate eagerly checks all construction parameters. Out-of-range values
// fail construction, not first use.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxAttempts,
			validation.Required,
			validation.Min(1),
			validation.Max(maxAllowedAttempts),
		),
		validation.Field(&c.InitialDelay,
			validation.Required,
			validation.Min(time.Duration(1)),
		),
		validation.Field(&c.JitterFactor,
			validation.Min(0.0),
		),
		validation.Field(&c.FailureThreshold,
			validation.Min(0),
		),
		validation.Field(&c.CircuitOpenDuration,
			validation.Min(time.Duration(0)),
		),
	)
}

// withDefaults fills the breaker open duration when the breaker is enabled
// but no duration was given.
func (c Config) withDefaults() Config {
	if c.FailureThreshold > 0 && c.CircuitOpenDuration == 0 {
		c.CircuitOpenDuration = defaultCircuitOpenDuration
	}

	return c
}
