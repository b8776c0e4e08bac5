// Package logger builds the zap logger shared by the server binary.
package logger

import (
	"go.uber.org/zap"
)

type Logger struct {
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log: zap.NewNop(),
	}
}

// Init replaces the logger with a production JSON logger at level, tagged
// with fields on every entry.
func (l *Logger) Init(level string, fields ...zap.Field) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "time"

	zl, err := cfg.Build(zap.Fields(fields...))
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}

// Named returns a child logger for one component.
func (l *Logger) Named(component string) *zap.Logger {
	return l.Log.Named(component)
}

func (l *Logger) Sync() {
	_ = l.Log.Sync()
}
