package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func InitProd(file *FileConfig) *zap.Logger {
	return initLogger(zap.NewProductionConfig(), file)
}

func InitDev() *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig(), nil)
}

func initLogger(config zap.Config, file *FileConfig) *zap.Logger {
	var err error
	logger, err = config.Build(zap.AddStacktrace(zap.WarnLevel))
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}

	if file != nil && file.Path != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
		})
		encoder := zapcore.NewJSONEncoder(config.EncoderConfig)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, zapcore.NewCore(encoder, sink, config.Level))
		}))
	}

	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	logger.Sync()
}
