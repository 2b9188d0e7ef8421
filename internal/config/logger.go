package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger: human-readable in development,
// JSON otherwise. LOG_LEVEL overrides the default level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var zcfg zap.Config
	if c.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
	}

	if c.Server.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(c.Server.LogLevel)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}

	return zcfg.Build()
}
