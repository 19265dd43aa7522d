// Package logging holds the process wide zap logger. It logs nothing until
// Initialize or SetLogger is called.
package logging

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv is read when Initialize gets no level.
const LevelEnv = "STEAMBOT_LOG_LEVEL"

var current atomic.Pointer[zap.Logger]

// Initialize builds a console logger at level ("debug", "info", "warn" or
// "error"), falling back to LevelEnv and then to info.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LevelEnv)
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	SetLogger(l)
	return nil
}

// SetLogger swaps the logger; nil restores the silent one.
func SetLogger(l *zap.Logger) {
	if l != nil {
		l = l.WithOptions(zap.AddCallerSkip(1))
	}
	current.Store(l)
}

func get() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

func Debug(msg string, fields ...zap.Field) { get().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { get().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { get().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { get().Error(msg, fields...) }

// Sync flushes buffered entries.
func Sync() {
	_ = get().Sync()
}
