// Package debug provides the opt-in diagnostic log. A disabled (or nil)
// Logger swallows everything, so call sites log unconditionally and the
// DEBUG environment variable decides whether anything lands on disk.
package debug

import (
	"log"
	"os"
)

const logPath = "debug.log"

// Logger appends to debug.log when enabled. Nil and the zero value are both
// safe to call.
type Logger struct {
	enabled bool
	out     *log.Logger
}

// NewLogger opens the log file for appending when enabled. If the file
// cannot be opened the logger degrades to disabled rather than failing the
// program over diagnostics.
func NewLogger(enabled bool) *Logger {
	if !enabled {
		return &Logger{}
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return &Logger{}
	}
	out := log.New(f, "", log.LstdFlags)
	out.Printf("=== debug logging enabled ===")
	return &Logger{enabled: true, out: out}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d == nil || !d.enabled {
		return
	}
	d.out.Printf(format, args...)
}
