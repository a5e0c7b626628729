package logging

import "sync"

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewLogrusAdapter("info", "text")
)

// GetLogger returns the process-wide default logger. Packages capture it at
// init time with `var log = logging.GetLogger()`; call SetLogger before any
// of those packages run if a different backend is needed.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the process-wide default logger. Intended for main and
// for tests that want to capture output with a MockLogger.
func SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// SetAllLogLevels adjusts the level of the default logger when it is backed
// by logrus. Loggers already captured by packages share the same underlying
// logrus instance, so the change applies everywhere.
func SetAllLogLevels(level string) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if adapter, ok := globalLogger.(*LogrusAdapter); ok {
		adapter.SetLevel(level)
	}
}
