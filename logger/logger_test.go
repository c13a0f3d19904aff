package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	release, err := New(Mode_Release)
	assert.NoError(t, err)
	assert.False(t, release.Core().Enabled(zapcore.DebugLevel))

	debug, err := New(Mode_Debug)
	assert.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zapcore.DebugLevel))
}
