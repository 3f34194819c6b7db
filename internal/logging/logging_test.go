package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, encoding := range []string{"console", "json"} {
		t.Run(encoding, func(t *testing.T) {
			logger, err := New(zap.NewAtomicLevelAt(zap.InfoLevel), encoding)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}

	_, err := New(zap.NewAtomicLevel(), "xml")
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := New(level, "console")
	require.NoError(t, err)

	require.NoError(t, SetLevel(level, "warn"))
	assert.Equal(t, zapcore.WarnLevel, level.Level())
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, SetLevel(level, "debug"))
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, SetLevel(level, "loud"))
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}
