package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerWith_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "WARN", " error "} {
		lg, err := NewLoggerWith(lvl, "console", true)
		require.NoError(t, err, lvl)
		require.NotNil(t, lg)
	}
}

func TestNewLoggerWith_Invalid(t *testing.T) {
	_, err := NewLoggerWith("loud", "console", false)
	assert.Error(t, err)

	_, err = NewLoggerWith("info", "xml", false)
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	lg := NewNopLogger().With("run_id", "x")
	lg.Info("hola %d", 1)
	lg.Warn("w")
	lg.Error("e")
	lg.Debug("d")
	assert.NoError(t, lg.Sync())
}

func TestFromZap_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	lg := FromZap(zap.New(core)).With("run", "abc")
	lg.Debug("ignored")
	lg.Info("ignored")
	lg.Warn("column %s has zero variance", "population")
	lg.Error("failed: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "column population has zero variance", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["run"])
	assert.Equal(t, "failed: boom", entries[1].Message)
}

func TestNewLogger_Default(t *testing.T) {
	lg := NewLogger(false)
	require.NotNil(t, lg)
	lg.Debug("below info, dropped")
}

func TestTimer_Laps(t *testing.T) {
	tm := NewTimer()
	time.Sleep(2 * time.Millisecond)
	d1 := tm.Lap("load")
	d2 := tm.Lap("correlate")

	laps := tm.Laps()
	require.Len(t, laps, 2)
	assert.Equal(t, "load", laps[0].Stage)
	assert.Equal(t, "correlate", laps[1].Stage)
	assert.GreaterOrEqual(t, d1, 2*time.Millisecond)
	assert.GreaterOrEqual(t, tm.Elapsed(), d1+d2)

	laps[0].Stage = "mutated"
	assert.Equal(t, "load", tm.Laps()[0].Stage)
}
