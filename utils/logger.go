package utils

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shutterbook/config"
)

// Logger is the process-wide structured logger.
var Logger *zap.Logger

// InitializeLogger builds the logger: JSON output at the configured level in
// production, colored console output at debug level everywhere else.
func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel())
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
}

// logLevel parses LOG_LEVEL, falling back to info.
func logLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(config.AppConfig.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// GetLogger returns the global logger, building it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
