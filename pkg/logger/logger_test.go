package logger_test

import (
	"testing"

	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := logger.New("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = logger.New("nonsense")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() { logger.Must(nil, assert.AnError) })
	assert.NotPanics(t, func() { logger.Must(zap.NewNop(), nil) })
}

func TestNamed(t *testing.T) {
	assert.NotNil(t, logger.Named(nil, "svc"))
	assert.NotNil(t, logger.Named(zap.NewNop(), "svc"))
}
