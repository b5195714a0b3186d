package log

import "sync"

// The process default exists so packages constructed before the configuration
// is loaded (and tests that never load it) still have somewhere to log.
// Commands replace it once the config is known.

var (
	mu      sync.RWMutex
	current *Logger
)

// SetDefaultLogger replaces the process-wide default logger.
func SetDefaultLogger(logger *Logger) {
	mu.Lock()
	current = logger
	mu.Unlock()
}

// DefaultLogger returns the process-wide default, creating an info-level text
// logger on first use when none was configured.
func DefaultLogger() *Logger {
	mu.RLock()
	logger := current
	mu.RUnlock()

	if logger == nil {
		logger = New(DefaultConfig())
		SetDefaultLogger(logger)
	}
	return logger
}
