package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config wraps a viper instance loaded from one or more files.
type Config struct {
	instance   *viper.Viper
	opts       ConfigOptions
	watchOnce  sync.Once
	watchMutex sync.RWMutex
	watcher    *fsnotify.Watcher
	targets    []target
}

// target is a struct bound with watching enabled.
type target struct {
	key          string
	instance     any
	withDefaults bool
}

// ConfigOptions selects the files to load.
type ConfigOptions struct {
	// BasePath is the directory holding the config files.
	BasePath string
	// FileName is the base name, without extension.
	FileName string
	// FileType is the extension and format (yaml, toml, json).
	FileType string
	// EnvPrefix prefixes the environment variables overriding file values.
	EnvPrefix string
	// WatchAble re-binds targets when a loaded file changes.
	WatchAble bool
	// OnChange runs after a re-bind, while the bound target is locked.
	OnChange func(e fsnotify.Event)
}
