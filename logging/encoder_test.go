package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testEntry() zapcore.Entry {
	return zapcore.Entry{
		LoggerName: "ingest",
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, time.UTC),
		Message:    "started",
		Caller: zapcore.EntryCaller{
			Defined:  true,
			Function: "github.com/dsdl/applog/pipeline.run",
			Line:     10,
		},
	}
}

func TestLineEncoder(t *testing.T) {
	const prefix = "2024-03-05 14:07:09,123 — ingest — INFO - run:line:10 — started"

	tests := []struct {
		name   string
		mutate func(*zapcore.Entry)
		fields []zapcore.Field
		want   string
	}{
		{
			name: "plain",
			want: prefix + "\n",
		},
		{
			name:   "fields",
			fields: []zapcore.Field{zap.Int("rows", 3), zap.String("src", "s3")},
			want:   prefix + ` {"rows":3,"src":"s3"}` + "\n",
		},
		{
			name:   "stack",
			mutate: func(e *zapcore.Entry) { e.Stack = "goroutine 1 [running]:" },
			want:   prefix + "\ngoroutine 1 [running]:\n",
		},
		{
			name:   "no caller",
			mutate: func(e *zapcore.Entry) { e.Caller = zapcore.EntryCaller{} },
			want:   "2024-03-05 14:07:09,123 — ingest — INFO - ?:line:0 — started\n",
		},
		{
			name:   "critical",
			mutate: func(e *zapcore.Entry) { e.Level = zapcore.FatalLevel },
			want:   "2024-03-05 14:07:09,123 — ingest — CRITICAL - run:line:10 — started\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := testEntry()
			if tt.mutate != nil {
				tt.mutate(&ent)
			}

			buf, err := GetEncoder(DefaultConfig()).EncodeEntry(ent, tt.fields)
			require.NoError(t, err)
			defer buf.Free()
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLineEncoderCloneKeepsContext(t *testing.T) {
	enc := GetEncoder(DefaultConfig())
	clone := enc.Clone()
	zap.String("stage", "load").AddTo(clone)

	buf, err := clone.EncodeEntry(testEntry(), []zapcore.Field{zap.Int("rows", 1)})
	require.NoError(t, err)
	require.Equal(t,
		"2024-03-05 14:07:09,123 — ingest — INFO - run:line:10 — started "+`{"stage":"load","rows":1}`+"\n",
		buf.String())
	buf.Free()

	buf, err = enc.EncodeEntry(testEntry(), nil)
	require.NoError(t, err)
	require.Equal(t, "2024-03-05 14:07:09,123 — ingest — INFO - run:line:10 — started\n", buf.String())
	buf.Free()
}

func TestLevelName(t *testing.T) {
	tests := map[zapcore.Level]string{
		zapcore.DebugLevel:  "DEBUG",
		zapcore.InfoLevel:   "INFO",
		zapcore.WarnLevel:   "WARNING",
		zapcore.ErrorLevel:  "ERROR",
		zapcore.DPanicLevel: "CRITICAL",
		zapcore.PanicLevel:  "CRITICAL",
		zapcore.FatalLevel:  "CRITICAL",
	}
	for level, want := range tests {
		require.Equal(t, want, LevelName(level), level.String())
	}
}

func TestFunctionName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/dsdl/applog/pipeline.run", "run"},
		{"main.main", "main"},
		{"github.com/dsdl/applog/pipeline.(*Loader).Load", "(*Loader).Load"},
		{"github.com/dsdl/applog/pipeline.run.func1", "run.func1"},
		{"run", "run"},
		{"", "?"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FunctionName(tt.in), tt.in)
	}
}

func TestCusTimeEncoder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeFormat = "2006-01-02"

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, enc.AddArray("t", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		CusTimeEncoder(cfg)(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), arr)
		return nil
	})))
	require.Equal(t, []any{"2024-03-05"}, enc.Fields["t"])
}
