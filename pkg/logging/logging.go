// Package logging holds the process-wide zap logger shared by every tessera
// package. It is silent until SetLogger is called.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger installs l for all packages. Passing nil restores the silent
// default.
//
// Levels used:
//   - Debug: per-frame diagnostics (missing uniform, vertex array built)
//   - Info: lifecycle (program linked, window opened)
//   - Warn: non-fatal GPU conditions (unsupported uniform type)
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

// Named returns a child of the current logger scoped to a subsystem.
func Named(name string) *zap.Logger {
	return Logger().Named(name)
}

// New builds a console logger for the CLI. Debug enables development
// output at debug level; otherwise only warnings and errors are shown.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Sampling = nil
	return cfg.Build()
}
