package debug

import "testing"

func TestDisabledLoggerIsSafe(t *testing.T) {
	l := NewLogger(false)
	l.Printf("dropped %d", 1)

	var nilLogger *Logger
	nilLogger.Printf("dropped %d", 2)
}
