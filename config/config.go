package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/dsdl/applog/utils"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

func DefaultConfigOptions() ConfigOptions {
	basePath := os.Getenv("CONFIG_PATH")
	if basePath == "" {
		basePath = "config"
	}

	return ConfigOptions{
		BasePath:  basePath,
		FileName:  "config",
		FileType:  "yaml",
		EnvPrefix: "",
		WatchAble: false,
		OnChange:  nil,
	}
}

func DevConfigOptions() ConfigOptions {
	opts := DefaultConfigOptions()
	opts.WatchAble = true
	return opts
}

func NewConfig(optsArr ...ConfigOptions) (*Config, error) {
	var opts ConfigOptions
	if len(optsArr) == 0 {
		opts = DefaultConfigOptions()
	} else {
		opts = optsArr[0]
	}

	instance, err := CreateConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Config{
		instance: instance,
		opts:     opts,
	}, nil
}

// Bind decodes the whole configuration into instance.
func (c *Config) Bind(instance any) error {
	return c.BindKey("", instance)
}

// BindKey decodes the section under key into instance. An empty key binds
// the whole configuration.
func (c *Config) BindKey(key string, instance any) error {
	return c.bind(key, instance, false)
}

// BindWithDefaults is Bind with `default` tags applied to fields left empty.
func (c *Config) BindWithDefaults(instance any) error {
	return c.BindKeyWithDefaults("", instance)
}

// BindKeyWithDefaults is BindKey with `default` tags applied to fields left empty.
func (c *Config) BindKeyWithDefaults(key string, instance any) error {
	return c.bind(key, instance, true)
}

func (c *Config) bind(key string, instance any, withDefaults bool) error {
	if c == nil || c.instance == nil {
		return fmt.Errorf("❌ Config instance is nil")
	}

	if instance == nil {
		return fmt.Errorf("❌ Target instance is nil")
	}
	if v := reflect.ValueOf(instance); v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("❌ Target instance must be a non-nil pointer, got %T", instance)
	}

	t := target{key: key, instance: instance, withDefaults: withDefaults}

	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()

	if err := c.decode(c.instance, t, instance); err != nil {
		return err
	}

	if c.opts.WatchAble {
		c.targets = append(c.targets, t)
		var err error
		c.watchOnce.Do(func() {
			err = c.watch()
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// decode fills into from the section t.key of v.
func (c *Config) decode(v *viper.Viper, t target, into any) error {
	if t.withDefaults {
		if err := defaults.Set(into); err != nil {
			return fmt.Errorf("❌ Failed to set defaults: %w", err)
		}
	}

	var err error
	if t.key == "" {
		err = v.Unmarshal(into)
	} else {
		err = v.UnmarshalKey(t.key, into)
	}
	if err != nil {
		return fmt.Errorf("❌ Failed to unmarshal config (path: %s, file: %s.%s, key: %q): %w",
			c.opts.BasePath, c.opts.FileName, c.opts.FileType, t.key, err)
	}

	if t.withDefaults {
		if err := defaults.Set(into); err != nil {
			return fmt.Errorf("❌ Failed to set defaults after unmarshal: %w", err)
		}
	}
	return nil
}

// watch reloads the files on change and re-decodes every bound target.
func (c *Config) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("❌ Failed to create config watcher: %w", err)
	}
	if err := watcher.Add(c.opts.BasePath); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("❌ Failed to watch %s: %w", c.opts.BasePath, err)
	}
	c.watcher = watcher

	go func() {
		for {
			select {
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				if e.Op&(fsnotify.Write|fsnotify.Create) == 0 || !c.isConfigFile(e.Name) {
					continue
				}
				c.reload(e)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Printf("❌ Config watch error: %v\n", err)
			}
		}
	}()
	return nil
}

// reload decodes every target into a zero value first, so keys removed from
// the files fall back to their defaults. Targets are only updated when all of
// them decode.
func (c *Config) reload(e fsnotify.Event) {
	instance, err := CreateConfig(c.opts)
	if err != nil {
		fmt.Printf("❌ Config reload error: %v\n", err)
		return
	}

	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()

	fresh := make([]reflect.Value, len(c.targets))
	for i, t := range c.targets {
		fresh[i] = reflect.New(reflect.TypeOf(t.instance).Elem())
		if err := c.decode(instance, t, fresh[i].Interface()); err != nil {
			fmt.Printf("❌ Config watch error: %v\n", err)
			return
		}
	}

	c.instance = instance
	for i, t := range c.targets {
		reflect.ValueOf(t.instance).Elem().Set(fresh[i].Elem())
	}

	if c.opts.OnChange != nil {
		c.opts.OnChange(e)
	}
}

func (c *Config) isConfigFile(name string) bool {
	name = filepath.Clean(name)
	for _, path := range candidateFilePaths(c.opts) {
		if filepath.Clean(path) == name {
			return true
		}
	}
	return false
}

// Close stops watching the config files.
func (c *Config) Close() error {
	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()

	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	c.watcher = nil
	return err
}

func (c *Config) Get(key string) any {
	c.watchMutex.RLock()
	defer c.watchMutex.RUnlock()

	return c.instance.Get(key)
}

func (c *Config) Set(key string, value any) {
	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()

	c.instance.Set(key, value)
}

func CreateConfig(opts ConfigOptions) (*viper.Viper, error) {
	configPaths := getConfigFilePaths(opts)
	if len(configPaths) == 0 {
		return nil, fmt.Errorf("❌ No valid configuration files found in path: %s", opts.BasePath)
	}

	v := viper.New()
	v.SetConfigType(opts.FileType)

	for _, configPath := range configPaths {
		tempV := viper.New()
		tempV.SetConfigFile(configPath)
		if err := tempV.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("❌ Error reading config file %s: %w", configPath, err)
		}

		for _, key := range tempV.AllKeys() {
			v.Set(key, tempV.Get(key))
		}
	}

	v.SetEnvKeyReplacer(envKeyReplacer)
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()

	// Override with environment variables (higher priority than config files)
	applyEnvOverrides(v, opts.EnvPrefix)

	return v, nil
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// applyEnvOverrides checks all config keys and overrides with environment variables if they exist.
// log.time-format is read from LOG_TIME_FORMAT, or <PREFIX>_LOG_TIME_FORMAT with a prefix.
func applyEnvOverrides(v *viper.Viper, envPrefix string) {
	for _, key := range v.AllKeys() {
		envKey := strings.ToUpper(envKeyReplacer.Replace(key))
		if envPrefix != "" {
			envKey = envPrefix + "_" + envKey
		}

		if envValue := os.Getenv(envKey); envValue != "" {
			v.Set(key, envValue)
		}
	}
}

// candidateFilePaths lists every file that may contribute, in load order:
// base, base.local, then the mode specific variants.
func candidateFilePaths(opts ConfigOptions) []string {
	fileNames := []string{
		opts.FileName,
		fmt.Sprintf("%s.local", opts.FileName),
	}
	for _, alias := range CurrentMode().aliases() {
		fileNames = append(fileNames,
			fmt.Sprintf("%s.%s", opts.FileName, alias),
			fmt.Sprintf("%s.%s.local", opts.FileName, alias),
		)
	}

	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		paths = append(paths, filepath.Join(opts.BasePath, fmt.Sprintf("%s.%s", fileName, opts.FileType)))
	}
	return paths
}

func getConfigFilePaths(opts ConfigOptions) (configFiles []string) {
	for _, file := range candidateFilePaths(opts) {
		if isDir, exists, _ := utils.Exists(file); exists && !isDir {
			configFiles = append(configFiles, file)
		}
	}
	return configFiles
}
