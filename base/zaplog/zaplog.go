package zaplog

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the process logger, or a nop logger if none has been set.
func Logger() *zap.Logger {
	l := logger.Load()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func SetLogger(l *zap.Logger) { logger.Store(l) }
