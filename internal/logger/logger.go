// Package logger prints leveled, colored log lines to the console.
package logger

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

var debugEnabled atomic.Bool

// SetDebug turns Debug output on or off. It is safe to call while other
// goroutines are logging.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether Debug output is on.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

func stamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// Info prints an informational message in green.
func Info(format string, v ...interface{}) {
	color.Green("%s [INFO] %s", stamp(), fmt.Sprintf(format, v...))
}

// Warn prints a warning in yellow.
func Warn(format string, v ...interface{}) {
	color.Yellow("%s [WARN] %s", stamp(), fmt.Sprintf(format, v...))
}

// Error prints an error in red.
func Error(format string, v ...interface{}) {
	color.Red("%s [ERROR] %s", stamp(), fmt.Sprintf(format, v...))
}

// Debug prints in cyan when debug output is enabled.
func Debug(format string, v ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	color.Cyan("%s [DEBUG] %s", stamp(), fmt.Sprintf(format, v...))
}

// Request logs one handled HTTP request.
func Request(method, path, ip string, status int, latency time.Duration) {
	line := fmt.Sprintf("%s [HTTP] %d %s %s from %s (%s)", stamp(), status, method, path, ip, latency)
	switch {
	case status >= 500:
		color.Red("%s", line)
	case status >= 400:
		color.Yellow("%s", line)
	default:
		color.White("%s", line)
	}
}
