// Package logger provides a configured zap sugared logger for the
// application layer. Core computation packages never log; failures
// there surface as errors and the caller decides what to do.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

func initLogger() {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if os.Getenv("ENVIRONMENT") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log = zl.Sugar()
}

// Get returns the shared sugared logger, initializing it on first use.
func Get() *zap.SugaredLogger {
	once.Do(initLogger)
	return log
}

// Sync flushes buffered log entries. Call before the application exits.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
