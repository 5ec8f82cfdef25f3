// Package logging provides structured logging for the validation engine.
//
// The API surface mirrors the package-level Default()/SetDefault()/
// Debug/Info/Warn/Error shape used throughout this codebase's ambient
// stack, but is backed by zap's SugaredLogger instead of a hand-rolled
// writer, so call sites read the same while log lines carry structured
// fields (rule id, term code, hierarchy name).
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	current *zap.SugaredLogger
)

func init() {
	current = newDefault()
}

func newDefault() *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	return zap.New(core).Sugar().Named("foodex2")
}

// Default returns the process-wide logger.
func Default() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetDefault replaces the process-wide logger, e.g. to raise verbosity
// under a CLI --debug flag or to redirect output in tests.
func SetDefault(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// Debug logs at debug level using the default logger.
func Debug(msg string, keysAndValues ...any) {
	Default().Debugw(msg, keysAndValues...)
}

// Info logs at info level using the default logger.
func Info(msg string, keysAndValues ...any) {
	Default().Infow(msg, keysAndValues...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, keysAndValues ...any) {
	Default().Warnw(msg, keysAndValues...)
}

// Error logs at error level using the default logger.
func Error(msg string, keysAndValues ...any) {
	Default().Errorw(msg, keysAndValues...)
}

// NewDebug builds a logger at debug level, for --debug CLI flags and tests
// that want to see cache warm-up and catalogue-load diagnostics.
func NewDebug() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stderr), zapcore.DebugLevel)
	return zap.New(core).Sugar().Named("foodex2")
}

// Disable silences all logging, for quiet batch runs and benchmarks.
func Disable() {
	SetDefault(zap.NewNop().Sugar())
}
