package log

import (
	"fmt"
	"log"
	"strings"
)

// logControlCharReplacer escapes control characters that can be used for log
// injection (CWE-117). Newlines, carriage returns, and tabs in log messages can
// forge fake log entries or mislead incident response.
var logControlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// sanitizeLogString escapes control characters in a single string value.
func sanitizeLogString(s string) string {
	return logControlCharReplacer.Replace(s)
}

// GoLogger is the Go built-in (log) implementation of Logger interface.
//
// All formatted output is sanitized to prevent log injection (CWE-117).
type GoLogger struct {
	Level LogLevel
}

// IsLevelEnabled checks if the given level is enabled.
func (l *GoLogger) IsLevelEnabled(level LogLevel) bool {
	if l == nil {
		return false
	}

	return l.Level >= level
}

// Debugf implements Debugf Logger interface function.
func (l *GoLogger) Debugf(format string, args ...any) {
	l.printf(DebugLevel, format, args...)
}

// Infof implements Infof Logger interface function.
func (l *GoLogger) Infof(format string, args ...any) {
	l.printf(InfoLevel, format, args...)
}

// Warnf implements Warnf Logger interface function.
func (l *GoLogger) Warnf(format string, args ...any) {
	l.printf(WarnLevel, format, args...)
}

// Errorf implements Errorf Logger interface function.
func (l *GoLogger) Errorf(format string, args ...any) {
	l.printf(ErrorLevel, format, args...)
}

func (l *GoLogger) printf(level LogLevel, format string, args ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}

	msg := fmt.Sprintf(sanitizeLogString(format), args...)
	log.Printf("%s: %s", strings.ToUpper(level.String()), sanitizeLogString(msg))
}
