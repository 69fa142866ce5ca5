package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestGetBeforeInit(t *testing.T) {
	global = nil
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { global = nil })

	require.NoError(t, Init("debug", "production"))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("warn", "development"))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.NotNil(t, Named("collector"))
}
