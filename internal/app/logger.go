package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Logger interface for app layer
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// zeroLogger adapts a zerolog.Logger to the printf-style Logger interface
type zeroLogger struct {
	z zerolog.Logger
}

// NewZeroLogger wraps a zerolog logger
func NewZeroLogger(z zerolog.Logger) Logger {
	return &zeroLogger{z: z}
}

func (l *zeroLogger) Debug(format string, args ...interface{}) {
	l.z.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Info(format string, args ...interface{}) {
	l.z.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Warn(format string, args ...interface{}) {
	l.z.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Error(format string, args ...interface{}) {
	l.z.Error().Msg(fmt.Sprintf(format, args...))
}

// globalLogger is the logger instance used by app layer.
// Until the CLI installs its own, only warnings and errors reach stderr.
var globalLogger Logger = NewZeroLogger(
	zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel),
)

// NopLogger returns a logger that discards everything
func NopLogger() Logger {
	return NewZeroLogger(zerolog.Nop())
}

// SetLogger sets the global logger for app layer
func SetLogger(logger Logger) {
	if logger != nil {
		globalLogger = logger
	}
}

// GetLogger returns the current logger
func GetLogger() Logger {
	return globalLogger
}
