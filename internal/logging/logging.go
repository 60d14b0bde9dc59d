// Package logging wraps zap with the small surface the rest of the
// application uses.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper over zap's sugared logger.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger. Verbose enables debug level and
// caller annotations.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.DisableCaller = true
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return &Logger{logger.Sugar()}
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
