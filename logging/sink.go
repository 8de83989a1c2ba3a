package logging

import (
	"math"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink is a zapcore.Core appending encoded entries to <Director>/<name>.log.
// The file is opened on the first write, in append mode when it already exists.
type FileSink struct {
	zapcore.Core
	name string
	file *lumberjack.Logger
}

// neverRotate is the lumberjack MaxSize, in megabytes, used when
// Config.MaxSize is zero. lumberjack substitutes 100MB for zero.
const neverRotate = math.MaxInt32

// newFileSink builds a sink for name. The directory must already exist.
func newFileSink(config Config, name string, level zapcore.LevelEnabler) *FileSink {
	maxSize := config.MaxSize
	if maxSize == 0 {
		maxSize = neverRotate
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(config.Director, name+".log"),
		MaxSize:    maxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}
	return &FileSink{
		Core: zapcore.NewCore(GetEncoder(config), zapcore.AddSync(file), level),
		name: name,
		file: file,
	}
}

// Name returns the logger name the sink was built for.
func (s *FileSink) Name() string {
	return s.name
}

// Path returns the file the sink writes to.
func (s *FileSink) Path() string {
	return s.file.Filename
}

// Close closes the underlying file. A later write reopens it.
func (s *FileSink) Close() error {
	return s.file.Close()
}

var _ zapcore.Core = (*FileSink)(nil)
