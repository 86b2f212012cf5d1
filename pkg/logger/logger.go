// Package logger builds the structured loggers used throughout the
// store. The teacher repository threads a *zap.SugaredLogger through
// every subsystem (engine, index, storage) but never shows where it
// comes from; this package is that missing constructor.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a SugaredLogger tagged with service, suitable for
// passing into store.Open, segment.Open, and friends. Production
// builds get JSON output at info level; callers that want console
// output or debug verbosity should build their own zap.Config, which
// is why this constructor stays this small.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	base, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig().Build() only fails on a bad sink
		// or encoder name, neither of which this constructor sets;
		// fall back to a Nop logger rather than panicking a library.
		base = zap.NewNop()
	}

	return base.Named(service).Sugar()
}

// NewDevelopment returns a SugaredLogger configured for human-readable
// console output.
func NewDevelopment(service string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// Nop returns a logger that discards everything, for tests that don't
// care about log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
