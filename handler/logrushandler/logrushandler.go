// Package logrushandler writes plog entries through a logrus.Logger.
package logrushandler

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/plog/core"
)

// PathFieldName is the key the logger path is written under.
const PathFieldName = "logger"

// Handler forwards accepted entries to a logrus.Logger.
type Handler struct {
	logger *logrus.Logger
}

// New creates a handler writing through l.
func New(l *logrus.Logger) *Handler {
	return &Handler{logger: l}
}

// Level maps a plog level to logrus.
func Level(l core.Level) logrus.Level {
	switch l {
	case core.TraceLevel:
		return logrus.TraceLevel
	case core.DebugLevel:
		return logrus.DebugLevel
	case core.InfoLevel:
		return logrus.InfoLevel
	case core.WarnLevel:
		return logrus.WarnLevel
	case core.ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}

// Handle writes the entry with Entry.Log, which never exits or panics
// for fatal entries.
func (h *Handler) Handle(entry *core.Entry) error {
	lvl := Level(entry.Level)
	if !h.logger.IsLevelEnabled(lvl) {
		return nil
	}

	fields := make(logrus.Fields, len(entry.Fields)+3)
	for _, f := range entry.Fields {
		fields[f.Key] = value(f)
	}
	if len(entry.Path) > 0 {
		fields[PathFieldName] = strings.Join(entry.Path, ":")
	}
	if entry.PID != 0 {
		fields["pid"] = entry.PID
	}
	if entry.Hostname != "" {
		fields["hostname"] = entry.Hostname
	}

	e := logrus.NewEntry(h.logger).WithFields(fields)
	if !entry.Time.IsZero() {
		e = e.WithTime(entry.Time)
	}
	e.Log(lvl, entry.Event)
	return nil
}

func value(f core.Field) interface{} {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return f.Str
	case core.IntType, core.Int64Type:
		return f.Int64
	case core.Float64Type:
		return f.Float64
	case core.BoolType:
		return f.Int64 == 1
	case core.TimeType:
		return time.Unix(0, f.Int64)
	case core.DurationType:
		return time.Duration(f.Int64)
	default:
		return f.Any
	}
}

// CanRecycleEntry returns true: logrus copies the fields into its own
// map before Handle returns.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Close is a no-op; the output belongs to the caller.
func (h *Handler) Close() error {
	return nil
}
