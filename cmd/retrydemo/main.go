// Command retrydemo exercises the retry engine against a flaky mock API call.
//
// Usage:
//
//	retrydemo [--attempts 5] [--initial-delay 100ms] [--jitter 0.1]
//	          [--failure-threshold 5] [--open-duration 60s]
//	          [--fail-rate 0.7] [--calls 1] [--export ladder.csv]
//	          [--config demo.yaml] [--env development]
//
// Each call wraps a mock API that times out with the configured probability;
// the engine retries with Fibonacci backoff and trips its breaker when
// failures cluster. The base delay ladder can be exported as CSV for
// inspection.
package main

import (
	"context"
	"errors"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/export"
	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/log"
	"github.com/NOURELHODABARKAT/fibonacci-backoff-manager/retry"
	zaplog "github.com/NOURELHODABARKAT/fibonacci-backoff-manager/zap"
)

var errAPITimeout = errors.New("API request timeout")

// demoConfig mirrors the engine config plus demo-only knobs, so a whole run
// can be described in one YAML file.
type demoConfig struct {
	Engine   retry.Config `yaml:"engine"`
	FailRate float64      `yaml:"failRate"`
	Calls    int          `yaml:"calls"`
}

var (
	configPath  string
	environment string
	failRate    float64
	calls       int
	exportPath  string

	engineCfg = retry.DefaultConfig()
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "retrydemo",
		Short:        "Fibonacci backoff retry engine demo",
		Long:         "Run flaky mock API calls through the retry engine and watch the backoff and breaker behave.",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().IntVar(&engineCfg.MaxAttempts, "attempts", engineCfg.MaxAttempts, "Attempt budget per call (1-30)")
	root.Flags().DurationVar(&engineCfg.InitialDelay, "initial-delay", engineCfg.InitialDelay, "Fibonacci ladder seed")
	root.Flags().Float64Var(&engineCfg.JitterFactor, "jitter", engineCfg.JitterFactor, "Jitter fraction applied to each delay")
	root.Flags().IntVar(&engineCfg.FailureThreshold, "failure-threshold", engineCfg.FailureThreshold, "Consecutive failures that trip the breaker (0 disables)")
	root.Flags().DurationVar(&engineCfg.CircuitOpenDuration, "open-duration", engineCfg.CircuitOpenDuration, "How long a tripped breaker rejects calls")
	root.Flags().Float64Var(&failRate, "fail-rate", 0.7, "Probability that the mock API call fails")
	root.Flags().IntVar(&calls, "calls", 1, "Number of calls to run through the engine")
	root.Flags().StringVar(&exportPath, "export", "", "Write the base delay ladder to this CSV file")
	root.Flags().StringVar(&configPath, "config", "", "YAML config file (overrides flags)")
	root.Flags().StringVar(&environment, "env", string(zaplog.EnvironmentDevelopment), "Logger profile: development or production")

	return root
}

func run(_ *cobra.Command, _ []string) error {
	if configPath != "" {
		if err := loadConfig(configPath); err != nil {
			return err
		}
	}

	logger, _, err := zaplog.New(zaplog.Config{Environment: zaplog.Environment(environment)})
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	engine, err := retry.New(engineCfg, retry.WithLogger(logger), retry.WithListener(demoListener{logger}))
	if err != nil {
		return err
	}

	defer func() { _ = engine.Close() }()

	if exportPath != "" {
		if err := export.WriteFile(exportPath, engine.Delays()); err != nil {
			return err
		}

		logger.Infof("exported %d-step delay ladder to %s", len(engine.Delays()), exportPath)
	}

	for i := 0; i < calls; i++ {
		payload, err := retry.Call(context.Background(), engine, mockAPICall)
		if err != nil {
			logger.Errorf("call %d failed: %v", i+1, err)
			continue
		}

		logger.Infof("call %d result: %s", i+1, payload)
	}

	return nil
}

func loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := demoConfig{Engine: engineCfg, FailRate: failRate, Calls: calls}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	engineCfg = cfg.Engine
	failRate = cfg.FailRate
	calls = cfg.Calls

	return nil
}

// mockAPICall simulates a transiently failing network request.
func mockAPICall() (string, error) {
	time.Sleep(time.Duration(mrand.Intn(20)) * time.Millisecond)

	if mrand.Float64() < failRate {
		return "", errAPITimeout
	}

	return "API response payload", nil
}

// demoListener narrates the retry lifecycle.
type demoListener struct {
	logger log.Logger
}

func (l demoListener) BeforeRetry(attempt int, delay time.Duration) {
	l.logger.Warnf("attempt %d failed, next try in %v", attempt+1, delay)
}

func (l demoListener) OnRetryFailure(err error) {
	l.logger.Errorf("giving up: %v", err)
}
