// Package log provides the application logger. The TUI owns the terminal,
// so the default sink is a rotated file; console output is opt-in and goes
// to stderr.
package log

import (
	"sync"
)

type Logger interface {
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsDebugEnabled() bool
}

var (
	mu     sync.Mutex
	logger Logger
)

// Init configures the global logger. The first call wins; later calls are
// ignored so tests and subcommands can initialize freely.
func Init(cfg *LoggerConfig) error {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return nil
	}
	l, err := newLogrusAdapter(cfg)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// GetLogger returns the global logger, lazily falling back to the default
// configuration when Init was never called.
func GetLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		l, err := newLogrusAdapter(DefaultConfig())
		if err != nil {
			panic(err)
		}
		logger = l
	}
	return logger
}
