// Package logger holds the process wide zap logger used by the CLI.
//
// Logs go to stderr so generated output written to stdout stays clean.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Verbosity levels for the count of -v flags.
const (
	VerbosityQuiet = -1 // -q: errors only
	VerbosityUser  = 0  // warnings and errors
	VerbosityInfo  = 1  // -v: progress
	VerbosityDebug = 2  // -vv: per configuration detail
)

// VerbosityToLevel maps a verbosity to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.ErrorLevel
	case verbosity == VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Options configures Initialize.
type Options struct {
	// JSON switches from console to JSON encoding.
	JSON      bool
	Verbosity int
	// Output defaults to stderr.
	Output io.Writer
}

// New builds a logger for opts.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(out), VerbosityToLevel(opts.Verbosity))
	return zap.New(core)
}

// Initialize replaces the global logger.
func Initialize(opts Options) {
	l := New(opts)
	mu.Lock()
	global = l
	mu.Unlock()
}

// L returns the global logger. It is a no-op logger until Initialize is
// called.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// S returns the global sugared logger.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}
