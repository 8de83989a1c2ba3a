package logging

import (
	"os"
	"path/filepath"
	"sync"
)

var (
	defaultFactory *Factory
	defaultMu      sync.RWMutex
)

// Default returns the process-wide factory, creating one rooted at
// <cwd>/logs on first use.
func Default() *Factory {
	defaultMu.RLock()
	f := defaultFactory
	defaultMu.RUnlock()
	if f != nil {
		return f
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultFactory == nil {
		cfg := DefaultConfig()
		if wd, err := os.Getwd(); err == nil {
			cfg.Director = filepath.Join(wd, cfg.Director)
		}
		defaultFactory = NewFactory(cfg)
	}
	return defaultFactory
}

// SetDefault replaces the process-wide factory. The previous one is not
// closed. Passing nil makes the next Default call build a fresh one.
func SetDefault(f *Factory) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultFactory = f
}

// GetLogger returns the named logger of the default factory.
func GetLogger(name string) (Logger, error) {
	return Default().GetLogger(name)
}

// MustGetLogger returns the named logger of the default factory and panics
// when the log directory or file cannot be set up.
func MustGetLogger(name string) Logger {
	return Default().MustGetLogger(name)
}
