package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger, initialized once from main. Get returns a no-op logger
// before Init so library packages can log unconditionally in tests.
var log = zap.NewNop()

// Init builds the global logger. Development mode uses the human-readable
// console encoder; production emits JSON.
func Init(development bool, level string) error {
	var config zap.Config
	if development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(parsed)

	built, err := config.Build()
	if err != nil {
		return err
	}
	log = built
	return nil
}

// Get returns the logger instance
func Get() *zap.Logger {
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	return log.Sync()
}
