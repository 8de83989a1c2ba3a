package config

import (
	"os"
	"strings"
)

// ModeEnvKey names the environment variable selecting the mode.
const ModeEnvKey = "GO_ENV_MODE"

// Mode selects the environment-specific config files.
type Mode string

const (
	DevMode  Mode = "development"
	ProMode  Mode = "production"
	TestMode Mode = "test"
)

// ParseMode maps common spellings to a Mode. Unknown values mean DevMode.
func ParseMode(env string) Mode {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod", "pro":
		return ProMode
	case "test", "testing":
		return TestMode
	default:
		return DevMode
	}
}

// CurrentMode reads the mode from GO_ENV_MODE.
func CurrentMode() Mode {
	return ParseMode(os.Getenv(ModeEnvKey))
}

// aliases returns the file-name suffixes that belong to m.
func (m Mode) aliases() []string {
	switch m {
	case ProMode:
		return []string{"production", "pro", "prod"}
	case TestMode:
		return []string{"test"}
	default:
		return []string{"development", "dev"}
	}
}
