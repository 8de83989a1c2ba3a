package logging

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dsdl/applog/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Factory creates and manages named loggers, one file per name.
type Factory struct {
	config Config
	level  zap.AtomicLevel
	hooks  []Hook

	mu      sync.Mutex
	loggers map[string]*registered
}

// registered is a named logger and the sinks it writes to.
type registered struct {
	logger Logger
	sinks  []*FileSink
}

// Option configures a Factory.
type Option func(*Factory)

// WithHooks runs hooks for every entry written by any logger of the factory.
func WithHooks(hooks ...Hook) Option {
	return func(f *Factory) {
		f.hooks = append(f.hooks, hooks...)
	}
}

// NewFactory creates a new Factory with the given config.
// Nothing touches the filesystem until a sink is built.
func NewFactory(config Config, opts ...Option) *Factory {
	config.applyDefaults()
	f := &Factory{
		config:  config,
		level:   zap.NewAtomicLevelAt(config.TransportLevel()),
		loggers: make(map[string]*registered),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// EnsureDir creates dir and any missing parents. It is a no-op when dir
// already exists.
func EnsureDir(dir string) error {
	if err := utils.CreateDir(dir); err != nil {
		return fmt.Errorf("create log directory %s: %w", dir, err)
	}
	return nil
}

// EnsureDir creates the factory's log directory.
func (f *Factory) EnsureDir() error {
	return EnsureDir(f.config.Director)
}

// BuildFileSink returns a new sink writing to <Director>/<name>.log.
// Every call returns a distinct sink; attaching two of them to one logger
// writes each line twice.
func (f *Factory) BuildFileSink(name string) (*FileSink, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := f.EnsureDir(); err != nil {
		return nil, err
	}
	return newFileSink(f.config, name, f.level), nil
}

// GetLogger returns the logger registered under name, creating it and its
// file sink on first use. Later calls never attach another sink.
func (f *Factory) GetLogger(name string) (Logger, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	r, err := f.register(name)
	if err != nil {
		return nil, err
	}
	return r.logger, nil
}

// MustGetLogger is like GetLogger but panics when the logger cannot be set up.
func (f *Factory) MustGetLogger(name string) Logger {
	return utils.Panic(f.GetLogger(name))
}

// Attach adds sink to the logger registered under name, creating the logger
// first if needed, and returns the updated logger. Handles returned before
// the call keep writing to the previous sinks only.
func (f *Factory) Attach(name string, sink *FileSink) (Logger, error) {
	if sink == nil {
		return nil, fmt.Errorf("attach to %q: nil sink", name)
	}
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	r, err := f.register(name)
	if err != nil {
		return nil, err
	}
	r.sinks = append(r.sinks, sink)
	r.logger = f.newLogger(name, r.sinks)
	return r.logger, nil
}

// register returns the entry for name, building its first sink if absent.
// f.mu must be held.
func (f *Factory) register(name string) (*registered, error) {
	if r, ok := f.loggers[name]; ok {
		return r, nil
	}

	if err := f.EnsureDir(); err != nil {
		return nil, err
	}
	r := &registered{sinks: []*FileSink{newFileSink(f.config, name, f.level)}}
	r.logger = f.newLogger(name, r.sinks)
	f.loggers[name] = r
	return r, nil
}

func (f *Factory) newLogger(name string, sinks []*FileSink) Logger {
	cores := make([]zapcore.Core, 0, len(sinks)+2)
	for _, s := range sinks {
		cores = append(cores, s)
	}
	if f.config.LogInTerminal {
		cores = append(cores, zapcore.NewCore(GetEncoder(f.config), zapcore.Lock(os.Stdout), f.level))
	}
	if len(f.hooks) > 0 {
		cores = append(cores, newHookCore(f.level, f.hooks))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Named(name)
	return newZapLogger(name, zl)
}

// Names returns the registered logger names in sorted order.
func (f *Factory) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.loggers))
	for name := range f.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetLevel changes the minimum level of every logger of the factory.
func (f *Factory) SetLevel(level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	f.level.SetLevel(l)
	return nil
}

// Level returns the current minimum level.
func (f *Factory) Level() zapcore.Level {
	return f.level.Level()
}

// Config returns a copy of the factory's configuration.
func (f *Factory) Config() Config {
	return f.config
}

// Sync flushes every sink.
func (f *Factory) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	for _, r := range f.loggers {
		for _, s := range r.sinks {
			err = multierr.Append(err, s.Sync())
		}
	}
	return err
}

// Close closes every file and forgets the registered loggers.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	for _, r := range f.loggers {
		for _, s := range r.sinks {
			err = multierr.Append(err, s.Close())
		}
	}
	f.loggers = make(map[string]*registered)
	return err
}
