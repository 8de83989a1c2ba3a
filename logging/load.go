package logging

import (
	"fmt"
	"sync/atomic"

	"github.com/dsdl/applog/config"
	"github.com/fsnotify/fsnotify"
)

// LoadConfig reads the "log" section of the files selected by opts.
// Empty fields get their defaults and the result is validated.
func LoadConfig(opts config.ConfigOptions) (Config, error) {
	opts.WatchAble = false

	c, err := config.NewConfig(opts)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := c.BindKeyWithDefaults(ConfigKey, &cfg); err != nil {
		return Config{}, err
	}
	if err := config.ValidateStruct(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFactoryFromConfig builds a Factory from the "log" section of the files
// selected by opts. With opts.WatchAble the factory follows level changes
// written to those files; the returned *config.Config must then be closed to
// stop watching.
func NewFactoryFromConfig(opts config.ConfigOptions, factoryOpts ...Option) (*Factory, *config.Config, error) {
	var (
		cfg     Config
		current atomic.Pointer[Factory]
	)

	onChange := opts.OnChange
	opts.OnChange = func(e fsnotify.Event) {
		if f := current.Load(); f != nil {
			if err := f.SetLevel(cfg.Level); err != nil {
				fmt.Printf("❌ Log level reload error: %v\n", err)
			}
		}
		if onChange != nil {
			onChange(e)
		}
	}

	c, err := config.NewConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	if err := c.BindKeyWithDefaults(ConfigKey, &cfg); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	if err := config.ValidateStruct(&cfg); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	f := NewFactory(cfg, factoryOpts...)
	current.Store(f)
	return f, c, nil
}
