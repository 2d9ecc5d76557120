package log

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input       string
		expected    LogLevel
		expectError bool
	}{
		{input: "debug", expected: DebugLevel},
		{input: "info", expected: InfoLevel},
		{input: "INFO", expected: InfoLevel},
		{input: "warn", expected: WarnLevel},
		{input: "warning", expected: WarnLevel},
		{input: "error", expected: ErrorLevel},
		{input: "verbose", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestGoLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer

	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	logger := &GoLogger{Level: WarnLevel}

	logger.Debugf("hidden %d", 1)
	logger.Infof("hidden %d", 2)
	logger.Warnf("visible %d", 3)
	logger.Errorf("visible %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN: visible 3")
	assert.Contains(t, out, "ERROR: visible 4")
}

func TestGoLogger_SanitizesControlChars(t *testing.T) {
	var buf bytes.Buffer

	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	logger := &GoLogger{Level: DebugLevel}
	logger.Infof("user input: %s", "line1\nFAKE ENTRY")

	assert.NotContains(t, buf.String(), "\nFAKE ENTRY")
	assert.Contains(t, buf.String(), `line1\nFAKE ENTRY`)
}

func TestGoLogger_NilReceiverSafe(t *testing.T) {
	var logger *GoLogger

	assert.NotPanics(t, func() {
		logger.Infof("should be dropped")
	})
	assert.False(t, logger.IsLevelEnabled(ErrorLevel))
}

func TestNopLogger_ImplementsLogger(t *testing.T) {
	var _ Logger = (*NopLogger)(nil)

	assert.NotPanics(t, func() {
		NewNop().Errorf("dropped %v", "anything")
	})
}
