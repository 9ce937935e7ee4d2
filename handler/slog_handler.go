package handler

import (
	"context"
	"log/slog"
	"slices"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/settings"
)

// Extra slog levels for the two plog levels slog has no name for.
const (
	SlogLevelTrace = slog.Level(-8)
	SlogLevelFatal = slog.Level(12)
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// plog Handler. Records go through the same filter as plog loggers: the
// handler has a logger path and Enabled asks the settings manager
// whether that path and level pass, so rejected slog calls never build
// attributes.
type SlogHandler struct {
	handler  Handler
	settings *settings.Manager
	path     []string
	attrs    []core.Field
	group    string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. path is the logger path records are attributed to. A nil
// manager lets every record through.
func NewSlogHandler(h Handler, m *settings.Manager, path ...string) *SlogHandler {
	return &SlogHandler{
		handler:  h,
		settings: m,
		path:     slices.Clone(path),
	}
}

// Enabled reports whether the filter accepts records at the given level
// on this handler's path.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if s.settings == nil {
		return true
	}
	return s.settings.Current().Allows(slogLevelToCore(level), s.path)
}

// Handle processes a slog.Record by converting it to a core.Entry and passing it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = slogLevelToCore(record.Level)
	entry.Event = record.Message
	entry.Path = s.path

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}

	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendSlogAttr(entry.Fields, s.group, a)
		return true
	})

	err := s.handler.Handle(entry)
	if CanRecycle(s.handler) {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendSlogAttr(newAttrs, s.group, a)
	}
	c := s.clone()
	c.attrs = newAttrs
	return c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := s.clone()
	if s.group != "" {
		c.group = s.group + "." + name
	} else {
		c.group = name
	}
	return c
}

// WithPath returns a handler whose records are attributed to a child
// path, e.g. WithPath("db") on "app" logs as "app:db".
func (s *SlogHandler) WithPath(segments ...string) *SlogHandler {
	c := s.clone()
	c.path = append(slices.Clone(s.path), segments...)
	return c
}

func (s *SlogHandler) clone() *SlogHandler {
	c := *s
	c.attrs = slices.Clone(s.attrs)
	return &c
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= SlogLevelFatal:
		return core.FatalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendSlogAttr converts a slog.Attr to fields, prepending the group
// prefix if present. Group attributes are flattened.
func appendSlogAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(dst, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(dst, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		// An inline group (empty key) keeps the current prefix.
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			dst = appendSlogAttr(dst, prefix, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
