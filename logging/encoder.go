package logging

import (
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Separator sits between the fields of a text line.
const Separator = " — "

var linePool = buffer.NewPool()

// lineEncoder renders entries as
//
//	<time> — <name> — <LEVEL> - <function>:line:<n> — <message>
//
// Structured fields are delegated to an embedded JSON encoder and appended
// after the message as one object.
type lineEncoder struct {
	zapcore.Encoder
	timeFormat string
}

func newLineEncoder(config Config) zapcore.Encoder {
	return &lineEncoder{
		Encoder: zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}),
		timeFormat: config.TimeFormat,
	}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	return &lineEncoder{
		Encoder:    e.Encoder.Clone(),
		timeFormat: e.timeFormat,
	}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := linePool.Get()
	line.AppendString(ent.Time.Format(e.timeFormat))
	line.AppendString(Separator)
	line.AppendString(ent.LoggerName)
	line.AppendString(Separator)
	line.AppendString(LevelName(ent.Level))
	line.AppendString(" - ")
	if ent.Caller.Defined {
		line.AppendString(FunctionName(ent.Caller.Function))
		line.AppendString(":line:")
		line.AppendInt(int64(ent.Caller.Line))
	} else {
		line.AppendString("?:line:0")
	}
	line.AppendString(Separator)
	line.AppendString(ent.Message)

	// The embedded encoder has no keys configured, so it emits only the
	// context and call-site fields.
	extra, err := e.Encoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		line.Free()
		return nil, err
	}
	if obj := strings.TrimSpace(extra.String()); obj != "{}" {
		line.AppendByte(' ')
		line.AppendString(obj)
	}
	extra.Free()

	if ent.Stack != "" {
		line.AppendByte('\n')
		line.AppendString(ent.Stack)
	}
	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

// LevelName returns the upper-case level label used in text lines.
func LevelName(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.InfoLevel:
		return "INFO"
	case zapcore.WarnLevel:
		return "WARNING"
	case zapcore.ErrorLevel:
		return "ERROR"
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return "CRITICAL"
	default:
		return l.CapitalString()
	}
}

// FunctionName strips the import path and package from a runtime function
// name: "github.com/a/b.run" becomes "run", "b.(*T).run" becomes "(*T).run".
func FunctionName(fn string) string {
	if fn == "" {
		return "?"
	}
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	if i := strings.IndexByte(fn, '.'); i >= 0 {
		fn = fn[i+1:]
	}
	return fn
}

// CusTimeEncoder formats timestamps with the configured layout.
func CusTimeEncoder(config Config) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(config.TimeFormat))
	}
}

// GetEncoder returns the encoder selected by config.Format.
func GetEncoder(config Config) zapcore.Encoder {
	if config.Format == "json" {
		return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			MessageKey:     "message",
			LevelKey:       "level",
			TimeKey:        "time",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    "function",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     CusTimeEncoder(config),
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		})
	}
	return newLineEncoder(config)
}
