package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(level, WithCore(core)), logs
}

func TestLogger_LevelGate(t *testing.T) {
	l, logs := newObserved(LevelInfo)

	l.Debug("hidden")
	l.Info("shown")
	assert.Equal(t, 1, logs.Len())

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())
	l.Debug("now shown")
	assert.Equal(t, 2, logs.Len())
}

func TestLogger_Fields(t *testing.T) {
	l, logs := newObserved(LevelDebug)

	l.With(Room("W1N1"), Tick(42)).Warn("behavior failed",
		Unit("u1"), Job("harvester"), Error(errors.New("boom")), Int("count", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "W1N1", ctx["room"])
	assert.Equal(t, int64(42), ctx["tick"])
	assert.Equal(t, "u1", ctx["unit"])
	assert.Equal(t, "harvester", ctx["job"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, int64(3), ctx["count"])
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestLogger_NilErrorSkipped(t *testing.T) {
	l, logs := newObserved(LevelDebug)
	l.Error("no error", Error(nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	_, ok := entries[0].ContextMap()["error"]
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, "warn", LevelWarn.String())
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	assert.NoError(t, l.Sync())
}
