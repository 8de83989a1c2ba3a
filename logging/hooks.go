package logging

import (
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// Hook is a function that is called for each written log entry.
// It can be used for alerting, metrics or tests.
type Hook func(entry zapcore.Entry) error

// hookCore is teed next to the file sinks. It writes nothing itself and
// runs the hooks for every entry at or above the level.
type hookCore struct {
	zapcore.LevelEnabler
	hooks []Hook
}

func newHookCore(level zapcore.LevelEnabler, hooks []Hook) zapcore.Core {
	return &hookCore{
		LevelEnabler: level,
		hooks:        hooks,
	}
}

func (c *hookCore) With([]zapcore.Field) zapcore.Core {
	return c
}

func (c *hookCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

// Write runs every hook. Hook errors are combined and reported to zap's
// error output; they never stop the line from reaching the files.
func (c *hookCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	var err error
	for _, hook := range c.hooks {
		err = multierr.Append(err, hook(entry))
	}
	return err
}

func (c *hookCore) Sync() error {
	return nil
}
