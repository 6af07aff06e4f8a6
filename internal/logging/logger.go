package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger writes leveled diagnostic messages to stderr. Secret values must
// never reach it directly; wrap them in Secret first.
type Logger struct {
	debug   bool
	noColor bool
	out     io.Writer
}

// New creates a logger. Debug messages are dropped unless debug is set.
func New(debug, noColor bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: noColor,
		out:     os.Stderr,
	}
}

// NewWithWriter creates a logger that writes to out instead of stderr.
// Used by tests to capture log output.
func NewWithWriter(out io.Writer, debug, noColor bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: noColor,
		out:     out,
	}
}

func (l *Logger) emit(ansi, mark, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.noColor {
		fmt.Fprintf(l.out, "%s %s\n", mark, msg)
		return
	}
	fmt.Fprintf(l.out, "%s%s\033[0m %s\n", ansi, mark, msg)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("\033[32m", "✓", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit("\033[33m", "⚠", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("\033[31m", "✗", format, args...)
}

// Debug logs a message only when debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("\033[36m", "[DEBUG]", format, args...)
}

// Secret wraps a sensitive value so it is redacted by the fmt verbs.
type Secret string

// String always returns a redacted placeholder.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString returns the redacted placeholder for %#v formatting.
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces occurrences of the given secret values in s.
// Values of three characters or fewer are left alone to avoid
// mangling unrelated text.
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if len(secret) > 3 {
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
