package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zapcore.Level
	}{
		{in: slog.LevelDebug, want: zapcore.DebugLevel},
		{in: slog.LevelInfo, want: zapcore.InfoLevel},
		{in: slog.LevelWarn, want: zapcore.WarnLevel},
		{in: slog.LevelError, want: zapcore.ErrorLevel},
		{in: slog.Level(12), want: zapcore.ErrorLevel},
		{in: slog.Level(2), want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, zapLevel(tt.in))
		})
	}
}

func TestFromZap_WritesThroughCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	lg := FromZap(zap.New(core))

	lg.Debug("dropped")
	lg.With("controller", "users").Info("creating user", "endpoint", "create")
	lg.Error("failed", "error", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "creating user", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "users", fields["controller"])
	assert.Equal(t, "create", fields["endpoint"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{true, false} {
		lg := New(0, dev)
		require.NotNil(t, lg)
		assert.NotNil(t, lg.Zap())
		assert.True(t, lg.Zap().Core().Enabled(zapcore.InfoLevel))
		assert.False(t, lg.Zap().Core().Enabled(zapcore.DebugLevel))
	}
}
