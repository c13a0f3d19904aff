package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Mode_Debug   = "debug"
	Mode_Release = "release"
)

// New builds a production logger for release mode and a colored development logger otherwise.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == Mode_Release {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	return config.Build()
}
