package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewTextLogger(&buf, slog.LevelDebug), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger, context.Context)
		level string
		want  string
	}{
		{"debug", func(l Logger, ctx context.Context) { l.Debug(ctx, "re-emit", "table", "moments") }, "DEBUG", "table=moments"},
		{"info", func(l Logger, ctx context.Context) { l.Info(ctx, "moment added", "id", 7) }, "INFO", "id=7"},
		{"warn", func(l Logger, ctx context.Context) { l.Warn(ctx, "geocode failed", "address", "Tigre") }, "WARN", "address=Tigre"},
		{"error", func(l Logger, ctx context.Context) { l.Error(ctx, "insert failed", "err", "busy") }, "ERROR", "err=busy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := newTestLogger(t)
			tc.log(log, context.Background())

			out := buf.String()
			assert.Contains(t, out, "level="+tc.level)
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestSlogLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, slog.LevelWarn)

	log.Info(context.Background(), "dropped")
	log.Warn(context.Background(), "kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "search", "query", "tango").Info(context.Background(), "switched")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=switched", "module=search", "query=tango"} {
		assert.Contains(t, out, s)
	}
}

func TestJSONLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, slog.LevelInfo).Info(context.Background(), "hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	l := Discard()
	ctx := context.TODO()
	l.Info(ctx, "x")
	l.With("a", 1).Error(ctx, "y")
}
