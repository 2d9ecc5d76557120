package log

// NopLogger is a no-op logger implementation.
type NopLogger struct{}

// NewNop creates a no-op logger implementation.
func NewNop() Logger {
	return &NopLogger{}
}

// Debugf drops the log event.
func (l *NopLogger) Debugf(_ string, _ ...any) {}

// Infof drops the log event.
func (l *NopLogger) Infof(_ string, _ ...any) {}

// Warnf drops the log event.
func (l *NopLogger) Warnf(_ string, _ ...any) {}

// Errorf drops the log event.
func (l *NopLogger) Errorf(_ string, _ ...any) {}
