package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jafarshop/sellingplans/internal/config"
)

func TestNewLoggerHonoursLogLevel(t *testing.T) {
	logger, err := newLogger(&config.Config{Environment: "production", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = newLogger(&config.Config{Environment: "development", LogLevel: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerDefaultsByEnvironment(t *testing.T) {
	logger, err := newLogger(&config.Config{Environment: "production"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}
