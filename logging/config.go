package logging

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"go.uber.org/zap/zapcore"
)

// ConfigKey is the section of a config file holding the logging settings.
const ConfigKey = "log"

// Config represents the logger factory configuration.
type Config struct {
	// Director is the directory where <name>.log files are created.
	Director string `mapstructure:"director" json:"director" yaml:"director" toml:"director" default:"logs" validate:"required"`

	// Level is the minimum level written to the files (debug, info, warn, error, dpanic, panic, fatal).
	Level string `mapstructure:"level" json:"level" yaml:"level" toml:"level" default:"info" validate:"required"`

	// TimeFormat is the Go time layout of the leading timestamp.
	TimeFormat string `mapstructure:"time-format" json:"timeFormat" yaml:"time-format" toml:"time-format" default:"2006-01-02 15:04:05,000" validate:"required"`

	// Format selects the line layout: text (fixed dash-separated layout) or json.
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format" default:"text" validate:"oneof=text json"`

	// LogInTerminal echoes every line to stdout in addition to the file.
	LogInTerminal bool `mapstructure:"log-in-terminal" json:"logInTerminal" yaml:"log-in-terminal" toml:"log-in-terminal"`

	// MaxSize is the size in megabytes at which a file is rotated. Zero never rotates.
	MaxSize int `mapstructure:"max-size" json:"maxSize" yaml:"max-size" toml:"max-size" validate:"gte=0"`

	// MaxAge is the number of days rotated files are kept. Zero keeps them forever.
	MaxAge int `mapstructure:"max-age" json:"maxAge" yaml:"max-age" toml:"max-age" validate:"gte=0"`

	// MaxBackups is the number of rotated files kept. Zero keeps them all.
	MaxBackups int `mapstructure:"max-backups" json:"maxBackups" yaml:"max-backups" toml:"max-backups" validate:"gte=0"`

	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress" json:"compress" yaml:"compress" toml:"compress"`
}

// DefaultConfig returns a Config writing INFO and above to ./logs.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// TransportLevel converts the string level to zapcore.Level.
// Unknown levels fall back to InfoLevel.
func (c Config) TransportLevel() zapcore.Level {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// ParseLevel maps a level name to a zapcore.Level. The names
// warning and critical are accepted next to zap's own.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "dpanic":
		return zapcore.DPanicLevel, nil
	case "panic", "critical":
		return zapcore.PanicLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// applyDefaults fills empty fields from the default tags.
func (c *Config) applyDefaults() {
	// only fails for non-pointer targets
	_ = defaults.Set(c)
}
