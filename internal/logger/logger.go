package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once

// Init builds the global zap logger based on environment and replaces
// zap's globals so the rest of the code can use zap.L().
func Init(environment, level, format string) *zap.Logger {
	var logger *zap.Logger
	once.Do(func() {
		var cfg zap.Config
		if environment == "production" {
			cfg = zap.NewProductionConfig()
			cfg.EncoderConfig.TimeKey = "timestamp"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			cfg.DisableStacktrace = true
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		if format == "json" {
			cfg.Encoding = "json"
		} else {
			cfg.Encoding = "console"
		}
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}

		var err error
		logger, err = cfg.Build(zap.AddCaller())
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		zap.ReplaceGlobals(logger)
	})
	if logger == nil {
		logger = zap.L()
	}
	return logger
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
