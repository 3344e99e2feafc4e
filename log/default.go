package log

import (
	"os"
	"sync"
)

// The process-wide default logger writes to stderr. Command-line flag
// handling reconfigures it through [Config] before commands run.
var defaultLogger = struct {
	sync.RWMutex
	Logger
	opts []Option
}{
	Logger: Make(os.Stderr),
}

// Default returns the process-wide default logger.
func Default() Logger {
	defaultLogger.RLock()
	defer defaultLogger.RUnlock()

	return defaultLogger.Logger
}

// Config reconfigures the default logger. Options accumulate across
// calls, so late flags override earlier ones without discarding them.
// It returns the reconfigured logger.
func Config(opts ...Option) Logger {
	defaultLogger.Lock()
	defer defaultLogger.Unlock()

	defaultLogger.opts = append(defaultLogger.opts, opts...)
	defaultLogger.Logger = Make(os.Stderr, defaultLogger.opts...)

	return defaultLogger.Logger
}
