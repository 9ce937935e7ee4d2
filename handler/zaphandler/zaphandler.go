// Package zaphandler writes plog entries into a zapcore.Core, so
// programs already built around zap can keep their encoders and sinks
// while using plog loggers and filters.
package zaphandler

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/plog/core"
)

// Handler forwards accepted entries to a zapcore.Core.
type Handler struct {
	core zapcore.Core
}

// New creates a handler writing to c.
func New(c zapcore.Core) *Handler {
	return &Handler{core: c}
}

// NewLogger creates a handler writing to the core of l.
func NewLogger(l *zap.Logger) *Handler {
	return New(l.Core())
}

// Level maps a plog level to zap. Trace has no zap equivalent and maps
// to debug.
func Level(l core.Level) zapcore.Level {
	switch l {
	case core.TraceLevel, core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

// Handle writes the entry. The path becomes the zap logger name joined
// with dots. Fatal entries are written at zap's fatal level through
// Core.Write, which never exits the process.
func (h *Handler) Handle(entry *core.Entry) error {
	lvl := Level(entry.Level)
	if !h.core.Enabled(lvl) {
		return nil
	}

	ent := zapcore.Entry{
		Level:      lvl,
		Time:       entry.Time,
		LoggerName: strings.Join(entry.Path, "."),
		Message:    entry.Event,
	}
	if entry.Caller.Defined {
		ent.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     entry.Caller.File,
			Line:     entry.Caller.Line,
			Function: entry.Caller.Function,
		}
	}

	fields := make([]zapcore.Field, 0, len(entry.Fields)+2)
	for _, f := range entry.Fields {
		fields = append(fields, Field(f))
	}
	if entry.PID != 0 {
		fields = append(fields, zap.Int("pid", entry.PID))
	}
	if entry.Hostname != "" {
		fields = append(fields, zap.String("hostname", entry.Hostname))
	}
	return h.core.Write(ent, fields)
}

// Field converts a plog field to a zap field.
func Field(f core.Field) zapcore.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		return zap.String(f.Key, f.Str)
	default:
		return zap.Any(f.Key, f.Any)
	}
}

// CanRecycleEntry returns true: zap copies everything it keeps before
// Write returns.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Close flushes the core.
func (h *Handler) Close() error {
	return h.core.Sync()
}
