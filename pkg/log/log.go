// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log/slog"
	"sync"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

var (
	globalMu     sync.RWMutex
	globalLogger *slog.Logger
)

// NewDefaultLogger creates a new structured logger that writes
// human-readable, timestamped output to the console via zerolog,
// exposed through the standard log/slog API.
func NewDefaultLogger() *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.NewConsoleWriter()).
		With().
		Timestamp().
		Logger()

	return slog.New(slogzerolog.Option{Level: slog.LevelDebug, Logger: &zeroLogger}.NewZerologHandler())
}

// SetGlobalLogger installs logger as the one returned by GetGlobalLogger.
// cmd/tt-riingd calls this once during startup; every service thereafter
// retrieves the same logger rather than constructing its own.
func SetGlobalLogger(logger *slog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the logger installed by SetGlobalLogger, or a
// fresh NewDefaultLogger if none has been installed yet.
func GetGlobalLogger() *slog.Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}
	return NewDefaultLogger()
}
