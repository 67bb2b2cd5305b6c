// Package warn provides development-mode warnings over charmbracelet/log.
package warn

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
	mu                sync.Mutex
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New(os.Stderr)
		}
	})
	return defaultLogger
}

// New creates a warning logger writing to w.
func New(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.WarnLevel)
	return logger
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetOutput redirects the default logger, returning a restore function.
// Tests use this to capture warnings.
func SetOutput(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := getDefaultLogger()
	defaultLogger = New(w)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		defaultLogger = prev
	}
}

// Warnf logs a formatted warning through the default logger.
func Warnf(format string, args ...any) {
	getDefaultLogger().Warnf(format, args...)
}
