package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so the rest of the service does not depend on the
// logging library directly.
type Logger struct {
	*zap.Logger
	config *Config
}

var (
	globalLogger *Logger
	once         sync.Once
)

// NewLogger initializes the global logger from environment configuration.
// It is designed to be called once; subsequent calls return the same instance.
func NewLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()

		var zapConfig zap.Config
		if cfg.Format == "console" {
			zapConfig = zap.NewDevelopmentConfig()
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zapConfig = zap.NewProductionConfig()
			zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}

		if err := zapConfig.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid LOG_LEVEL %q, defaulting to info: %v\n", cfg.Level, err)
			zapConfig.Level.SetLevel(zapcore.InfoLevel)
		}

		zl, err := zapConfig.Build(zap.AddCallerSkip(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build zap logger, falling back to no-op: %v\n", err)
			zl = zap.NewNop()
		}

		globalLogger = &Logger{Logger: zl, config: cfg}
	})
	return globalLogger
}

// Named returns a child logger with the given name appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: DefaultConfig()}
}

// Sync flushes buffered entries; call on shutdown.
func (l *Logger) Sync() error {
	return l.Logger.Sync()
}
