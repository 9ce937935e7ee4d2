// Package zerologhandler writes plog entries through a zerolog.Logger.
package zerologhandler

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/philipp01105/plog/core"
)

// PathFieldName is the key the logger path is written under.
const PathFieldName = "logger"

// Handler forwards accepted entries to a zerolog.Logger.
type Handler struct {
	logger zerolog.Logger
}

// New creates a handler writing through l.
func New(l zerolog.Logger) *Handler {
	return &Handler{logger: l}
}

// Level maps a plog level to zerolog.
func Level(l core.Level) zerolog.Level {
	switch l {
	case core.TraceLevel:
		return zerolog.TraceLevel
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	case core.ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// Handle writes the entry. Fatal entries go through WithLevel and do
// not exit the process.
func (h *Handler) Handle(entry *core.Entry) error {
	ev := h.logger.WithLevel(Level(entry.Level))
	if ev == nil {
		return nil
	}
	if !entry.Time.IsZero() {
		ev = ev.Time(zerolog.TimestampFieldName, entry.Time)
	}
	if len(entry.Path) > 0 {
		ev = ev.Str(PathFieldName, strings.Join(entry.Path, ":"))
	}
	for _, f := range entry.Fields {
		ev = appendField(ev, f)
	}
	if entry.PID != 0 {
		ev = ev.Int("pid", entry.PID)
	}
	if entry.Hostname != "" {
		ev = ev.Str("hostname", entry.Hostname)
	}
	if entry.Caller.Defined {
		ev = ev.Str(zerolog.CallerFieldName, zerolog.CallerMarshalFunc(0, entry.Caller.File, entry.Caller.Line))
	}
	ev.Msg(entry.Event)
	return nil
}

func appendField(ev *zerolog.Event, f core.Field) *zerolog.Event {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return ev.Str(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return ev.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return ev.Float64(f.Key, f.Float64)
	case core.BoolType:
		return ev.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return ev.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return ev.Dur(f.Key, time.Duration(f.Int64))
	default:
		return ev.Interface(f.Key, f.Any)
	}
}

// CanRecycleEntry returns true: the event is encoded before Handle
// returns.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Close is a no-op; the writer belongs to the caller.
func (h *Handler) Close() error {
	return nil
}
