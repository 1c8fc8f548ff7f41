package plan

import "sync"

// pkgLogger is the package-level debug logger. Parsing is a pure function,
// so the only side effect it has is recording which recovery strategy
// succeeded.
var pkgLogger func(format string, args ...interface{})
var pkgLoggerMu sync.RWMutex

// SetDebugLog sets the debug logging function for the package.
func SetDebugLog(fn func(format string, args ...interface{})) {
	pkgLoggerMu.Lock()
	defer pkgLoggerMu.Unlock()
	pkgLogger = fn
}

// debugLog writes a message using the package-level logger, if set.
func debugLog(format string, args ...interface{}) {
	pkgLoggerMu.RLock()
	fn := pkgLogger
	pkgLoggerMu.RUnlock()

	if fn != nil {
		fn(format, args...)
	}
}
