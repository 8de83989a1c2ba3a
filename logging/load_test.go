package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dsdl/applog/config"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()

	tmp := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(tmp, []byte(body), 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, name)))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(t.TempDir(), "logs")
	writeConfig(t, dir, "config.yaml", "log:\n  director: "+logDir+"\n  level: warning\n")

	cfg, err := LoadConfig(config.ConfigOptions{BasePath: dir, FileName: "config", FileType: "yaml"})
	require.NoError(t, err)
	require.Equal(t, logDir, cfg.Director)
	require.Equal(t, "warning", cfg.Level)
	require.Equal(t, zapcore.WarnLevel, cfg.TransportLevel())
	require.Equal(t, "text", cfg.Format)
	require.Equal(t, "2006-01-02 15:04:05,000", cfg.TimeFormat)
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", "log:\n  format: xml\n")

	_, err := LoadConfig(config.ConfigOptions{BasePath: dir, FileName: "config", FileType: "yaml"})
	require.ErrorContains(t, err, "Format must be one of")
}

func TestNewFactoryFromConfigFollowsLevel(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(t.TempDir(), "logs")
	writeConfig(t, dir, "config.yaml", "log:\n  director: "+logDir+"\n  level: info\n")

	changed := make(chan struct{}, 8)
	f, c, err := NewFactoryFromConfig(config.ConfigOptions{
		BasePath:  dir,
		FileName:  "config",
		FileType:  "yaml",
		WatchAble: true,
		OnChange:  func(fsnotify.Event) { changed <- struct{}{} },
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
		_ = f.Close()
	})
	require.Equal(t, zapcore.InfoLevel, f.Level())
	require.Equal(t, logDir, f.Config().Director)

	writeConfig(t, dir, "config.yaml", "log:\n  director: "+logDir+"\n  level: debug\n")

	require.Eventually(t, func() bool {
		return f.Level() == zapcore.DebugLevel && len(changed) > 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewFactoryFromConfigRestoresDefaultLevel(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(t.TempDir(), "logs")
	writeConfig(t, dir, "config.yaml", "log:\n  director: "+logDir+"\n  level: debug\n")

	changed := make(chan struct{}, 8)
	f, c, err := NewFactoryFromConfig(config.ConfigOptions{
		BasePath:  dir,
		FileName:  "config",
		FileType:  "yaml",
		WatchAble: true,
		OnChange:  func(fsnotify.Event) { changed <- struct{}{} },
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
		_ = f.Close()
	})
	require.Equal(t, zapcore.DebugLevel, f.Level())

	writeConfig(t, dir, "config.yaml", "log:\n  director: "+logDir+"\n")

	require.Eventually(t, func() bool {
		return f.Level() == zapcore.InfoLevel && len(changed) > 0
	}, 5*time.Second, 20*time.Millisecond)
}
