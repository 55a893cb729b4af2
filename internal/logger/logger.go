// Package logger provides process-wide logging for Sentinel.
// Debug, Info, Warn, Section and Elapsed print only when verbose mode is
// enabled via the --verbose flag, tracing the fetch and report pipeline.
// Error always prints: it reports a degraded result the user should see.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// level orders messages; levelError and above ignore verbose mode.
type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var prefixes = [...]string{
	levelDebug: "[DEBUG] ",
	levelInfo:  "[INFO] ",
	levelWarn:  "[WARN] ",
	levelError: "[ERROR] ",
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now     = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < levelError && !verbose {
		return
	}
	fmt.Fprintf(output, prefixes[l]+format+"\n", args...)
}

// Debug prints pipeline detail in verbose mode.
func Debug(format string, args ...any) { logf(levelDebug, format, args...) }

// Info prints progress in verbose mode.
func Info(format string, args ...any) { logf(levelInfo, format, args...) }

// Warn prints a recoverable problem in verbose mode.
func Warn(format string, args ...any) { logf(levelWarn, format, args...) }

// Error prints regardless of verbose mode.
func Error(format string, args ...any) { logf(levelError, format, args...) }

// Section prints a header separating the work for one repository.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Elapsed starts a timer and returns a func that logs how long what took.
// Intended for defer: defer logger.Elapsed("collect acme/widget")().
func Elapsed(what string) func() {
	start := now()
	return func() {
		Debug("%s took %s", what, now().Sub(start).Round(time.Millisecond))
	}
}
