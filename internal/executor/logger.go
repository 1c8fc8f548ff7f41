package executor

import "sync"

var (
	logMu     sync.RWMutex
	pkgLogger func(format string, args ...any)
)

// SetDebugLog installs a debug logging callback for the package. Pass
// nil to silence it.
func SetDebugLog(fn func(format string, args ...any)) {
	logMu.Lock()
	defer logMu.Unlock()
	pkgLogger = fn
}

func debugLog(format string, args ...any) {
	logMu.RLock()
	fn := pkgLogger
	logMu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}
