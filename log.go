package filepond

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the package logger. It is a no-op logger unless SetLogger was
// called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger sets the logger used by components created without WithLogger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}
