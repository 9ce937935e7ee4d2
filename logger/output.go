package logger

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/formatter"
	"github.com/philipp01105/plog/settings"
)

// SettingsFormatter renders each entry as pretty text or JSON, whichever
// the current settings of its Manager ask for. Settings updates take
// effect on the next entry.
type SettingsFormatter struct {
	settings     *settings.Manager
	json         *formatter.JSONFormatter
	jsonWithTime *formatter.JSONFormatter
	pretty       atomic.Pointer[prettyFormatter]
}

type prettyFormatter struct {
	settings settings.Pretty
	*formatter.PrettyFormatter
}

// NewSettingsFormatter creates a formatter following m.
func NewSettingsFormatter(m *settings.Manager) *SettingsFormatter {
	return &SettingsFormatter{
		settings:     m,
		json:         formatter.NewJSONFormatter(formatter.Config{OmitTime: true}),
		jsonWithTime: formatter.NewJSONFormatter(formatter.Config{}),
	}
}

// current returns the formatter for the settings in effect. The pretty
// formatter is rebuilt only when its settings change, so the time gutter
// keeps counting across unrelated updates.
func (f *SettingsFormatter) current() formatter.BufferFormatter {
	data := f.settings.Current()
	if !data.Pretty.Enabled {
		if data.Include.Time {
			return f.jsonWithTime
		}
		return f.json
	}

	p := f.pretty.Load()
	if p != nil && p.settings == data.Pretty {
		return p
	}
	next := &prettyFormatter{
		settings: data.Pretty,
		PrettyFormatter: formatter.NewPrettyFormatter(formatter.PrettyConfig{
			Color:      data.Pretty.Color,
			LevelLabel: data.Pretty.LevelLabel,
			TimeDiff:   data.Pretty.TimeDiff,
		}),
	}
	if f.pretty.CompareAndSwap(p, next) {
		return next
	}
	return f.pretty.Load()
}

// Format formats an entry
func (f *SettingsFormatter) Format(entry *core.Entry) ([]byte, error) {
	var buf bytes.Buffer
	f.current().FormatEntry(entry, &buf)
	return buf.Bytes(), nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *SettingsFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	var buf bytes.Buffer
	f.current().FormatEntry(entry, &buf)
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatEntry formats an entry into the given buffer (implements formatter.BufferFormatter).
func (f *SettingsFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	f.current().FormatEntry(entry, buf)
}
