// Package logging holds the process-wide structured logger.
//
// Packages call L() at the point of use rather than caching the logger, so a
// logger installed by the CLI after flag parsing is picked up everywhere.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// L returns the current logger. It is never nil.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Set installs l as the process logger. Pass nil to restore the no-op logger.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}

// Options configures New.
type Options struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	// Empty means "info".
	Level string
	// File redirects output to a file instead of stderr. The interactive
	// screen sets this so log lines do not tear the terminal UI.
	File string
}

// New builds a development-style logger, matching what the CLI uses for
// interactive sessions.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, err
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}
	return cfg.Build()
}
