package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls the minimum severity that gets emitted.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(LevelInfo)
	sugar = newLogger()
)

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap.NewProductionConfig never fails to build with a valid
		// encoding, but fall back to a no-op logger just in case.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// SetLevel changes the global minimum log level.
func SetLevel(l Level) {
	level.SetLevel(l)
}

// ReplaceLogger swaps the backing logger. Intended for tests.
func ReplaceLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(args ...any) { logger().Debug(args...) }

func Debugf(template string, args ...any) { logger().Debugf(template, args...) }

func Info(args ...any) { logger().Info(args...) }

func Infof(template string, args ...any) { logger().Infof(template, args...) }

func Warn(args ...any) { logger().Warn(args...) }

func Warnf(template string, args ...any) { logger().Warnf(template, args...) }

func Error(args ...any) { logger().Error(args...) }

func Errorf(template string, args ...any) { logger().Errorf(template, args...) }

func Fatalf(template string, args ...any) { logger().Fatalf(template, args...) }

// Sync flushes buffered log entries. Call before process exit.
func Sync() error {
	return logger().Sync()
}
