// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("solving chain for %s", underlying)
//	logger.Debugf("strike=%.2f vol=%.4f", strike, vol)
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only critical failures.
	Info               // Info logs high-level application progress.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs very fine-grained execution details.
)

// current holds the active verbosity level.
// Only messages with level <= current are logged.
var current Level = Info

// std is the package-local logger. Logs go to stderr so normal program
// output stays clean for CLI pipelines; the global stdlib logger is
// left untouched.
var std = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

// SetVerbosity sets the global logging verbosity. Typically called
// once during startup after parsing CLI flags.
func SetVerbosity(v int) {
	current = Level(v)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// logf checks verbosity, formats the message, and emits it attributed
// to the caller of the exported helpers (calldepth 3: caller ->
// Errorf/Infof/... -> logf -> Output).
func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		_ = std.Output(3, fmt.Sprintf(prefix+format, args...))
	}
}

// Errorf logs an error-level message.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs debugging information.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs very detailed execution traces.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
