package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/handler/consolehandler"
	"github.com/philipp01105/plog/settings"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	l, err := NewBuilder().Build()
	if err != nil {
		// A bad LOG_LEVEL or LOG_PRETTY must not stop the program.
		fmt.Fprintf(os.Stderr, "plog: %v; using built-in settings\n", err)
		l = fallbackLogger()
	}
	defaultLogger = l
}

func fallbackLogger() *Logger {
	m, err := settings.New(settings.Input{}, settings.WithEnv(settings.Env{AppEnv: "development"}))
	if err != nil {
		panic(err)
	}
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Formatter: NewSettingsFormatter(m),
	})
	l, err := NewBuilder().WithSettings(m).WithHandler(h).Build()
	if err != nil {
		panic(err)
	}
	return l
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Trace logs a trace event using the default logger
func Trace(event string, fields ...core.Field) {
	Default().log(callerSkip, core.TraceLevel, event, fields)
}

// Debug logs a debug event using the default logger
func Debug(event string, fields ...core.Field) {
	Default().log(callerSkip, core.DebugLevel, event, fields)
}

// Info logs an info event using the default logger
func Info(event string, fields ...core.Field) {
	Default().log(callerSkip, core.InfoLevel, event, fields)
}

// Warn logs a warning event using the default logger
func Warn(event string, fields ...core.Field) {
	Default().log(callerSkip, core.WarnLevel, event, fields)
}

// Error logs an error event using the default logger
func Error(event string, fields ...core.Field) {
	Default().log(callerSkip, core.ErrorLevel, event, fields)
}

// Fatal logs a fatal event using the default logger. It does not exit.
func Fatal(event string, fields ...core.Field) {
	Default().log(callerSkip, core.FatalLevel, event, fields)
}

// Tracef logs a formatted trace event using the default logger
func Tracef(format string, args ...interface{}) {
	Default().logf(core.TraceLevel, format, args)
}

// Debugf logs a formatted debug event using the default logger
func Debugf(format string, args ...interface{}) {
	Default().logf(core.DebugLevel, format, args)
}

// Infof logs a formatted info event using the default logger
func Infof(format string, args ...interface{}) {
	Default().logf(core.InfoLevel, format, args)
}

// Warnf logs a formatted warning event using the default logger
func Warnf(format string, args ...interface{}) {
	Default().logf(core.WarnLevel, format, args)
}

// Errorf logs a formatted error event using the default logger
func Errorf(format string, args ...interface{}) {
	Default().logf(core.ErrorLevel, format, args)
}

// Fatalf logs a formatted fatal event using the default logger. It does not exit.
func Fatalf(format string, args ...interface{}) {
	Default().logf(core.FatalLevel, format, args)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Child returns a child of the default logger
func Child(name string) *Logger {
	return Default().Child(name)
}
