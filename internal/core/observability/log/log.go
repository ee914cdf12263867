// Package log is the engine's structured logging façade over zap.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	innerLogger *Logger
	initOnce    sync.Once
)

// Logger wraps a zap logger configured for the engine: JSON encoding to
// stderr with sampling, caller info disabled.
type Logger struct {
	z *zap.Logger
}

// New builds a logger at the given level. The first logger built becomes the
// process-wide one returned by Provide.
func New(level string) *Logger {
	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(parseLevel(level)),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	z, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	l := &Logger{z: z}
	initOnce.Do(func() { innerLogger = l })
	return l
}

// Nop returns a logger that discards everything. Used by tests and as the
// fallback when nothing called New.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Provide returns the process-wide logger, or a no-op logger when none was
// initialised.
func Provide() *Logger {
	if innerLogger == nil {
		return Nop()
	}
	return innerLogger
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field) { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// With returns a child logger carrying the extra fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

// Sync flushes buffered entries; safe to call on shutdown.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info", "":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
