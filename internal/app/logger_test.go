package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLoggerConfig_Level(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zapcore.Level
	}{
		{"production default", "production", "", zapcore.InfoLevel},
		{"development default", "development", "", zapcore.DebugLevel},
		{"override", "production", "warn", zapcore.WarnLevel},
		{"invalid keeps default", "development", "loud", zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := loggerConfig(tt.env, tt.level)
			assert.Equal(t, tt.want, config.Level.Level())
		})
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	logger := NewLogger("production", "error")
	defer logger.Sync()

	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
