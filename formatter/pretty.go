package formatter

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/philipp01105/plog/core"
)

// DefaultPrettyWidth is the line width used when PrettyConfig.Width is zero.
const DefaultPrettyWidth = 80

const (
	contextSep      = "  --  "
	contextEntrySep = "  "
	multilineIndent = "  | "
)

var levelGlyphs = [...]string{
	core.TraceLevel: "—",
	core.DebugLevel: "○",
	core.InfoLevel:  "●",
	core.WarnLevel:  "▲",
	core.ErrorLevel: "■",
	core.FatalLevel: "✕",
}

var levelColors = [...]lipgloss.Color{
	core.TraceLevel: lipgloss.Color("#808080"),
	core.DebugLevel: lipgloss.Color("#00AFFF"),
	core.InfoLevel:  lipgloss.Color("#5FD75F"),
	core.WarnLevel:  lipgloss.Color("#FFAF00"),
	core.ErrorLevel: lipgloss.Color("#FF5F5F"),
	core.FatalLevel: lipgloss.Color("#D700D7"),
}

// PrettyConfig configures a PrettyFormatter.
type PrettyConfig struct {
	// Color enables ANSI colours.
	Color bool
	// LevelLabel prints the level name next to its glyph.
	LevelLabel bool
	// TimeDiff prints the time elapsed since the previous entry in a
	// left gutter.
	TimeDiff bool
	// Width is the line width fields must fit in to stay on the event
	// line. Wider entries put each field on its own line.
	Width int
}

// PrettyFormatter renders entries for people reading a terminal:
//
//	  12ms ● app:db connected  --  host: "db1"  port: 5432
//
// A PrettyFormatter keeps the time of the last entry for the gutter, so
// one instance should serve one output stream.
type PrettyFormatter struct {
	cfg    PrettyConfig
	levels [len(levelGlyphs)]lipgloss.Style
	labels [len(levelGlyphs)]string
	faint  lipgloss.Style
	bold   lipgloss.Style

	mu   sync.Mutex
	last time.Time
}

// NewPrettyFormatter creates a new pretty formatter
func NewPrettyFormatter(cfg PrettyConfig) *PrettyFormatter {
	if cfg.Width <= 0 {
		cfg.Width = DefaultPrettyWidth
	}

	r := lipgloss.NewRenderer(io.Discard)
	if cfg.Color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	f := &PrettyFormatter{
		cfg:   cfg,
		faint: r.NewStyle().Faint(true),
		bold:  r.NewStyle().Bold(true),
	}
	width := 0
	for _, l := range core.Levels() {
		width = max(width, len(l.Name()))
	}
	for _, l := range core.Levels() {
		f.levels[l] = r.NewStyle().Foreground(levelColors[l])
		f.labels[l] = l.Name() + strings.Repeat(" ", width-len(l.Name()))
	}
	return f
}

// Format formats an entry for a terminal
func (f *PrettyFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *PrettyFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry formats an entry into the given buffer (implements BufferFormatter).
func (f *PrettyFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	f.formatToBuffer(entry, buf)
}

func (f *PrettyFormatter) formatToBuffer(entry *core.Entry, buf *bytes.Buffer) {
	var head strings.Builder

	if f.cfg.TimeDiff {
		head.WriteString(f.faint.Render(padLeft(formatTimeDiff(f.elapsed(entry.Time)), 5)))
		head.WriteByte(' ')
	}

	style := f.faint
	glyph, label := "?", "unknown"
	if entry.Level.Valid() {
		style = f.levels[entry.Level]
		glyph, label = levelGlyphs[entry.Level], f.labels[entry.Level]
	}
	head.WriteString(style.Render(glyph))
	if f.cfg.LevelLabel {
		head.WriteByte(' ')
		head.WriteString(style.Render(label))
	}

	if len(entry.Path) > 0 {
		head.WriteByte(' ')
		head.WriteString(style.Render(strings.Join(entry.Path, ":")))
	}
	head.WriteByte(' ')
	head.WriteString(entry.Event)
	buf.WriteString(head.String())

	if len(entry.Fields) == 0 {
		buf.WriteByte('\n')
		return
	}

	values := make([]string, len(entry.Fields))
	single := lipgloss.Width(head.String()) + len(contextSep)
	keyWidth := 0
	for i, field := range entry.Fields {
		values[i] = prettyValue(field)
		if i > 0 {
			single += len(contextEntrySep)
		}
		single += len(field.Key) + 2 + lipgloss.Width(values[i])
		keyWidth = max(keyWidth, len(field.Key))
	}

	if single <= f.cfg.Width && !multiline(values) {
		buf.WriteString(f.faint.Render(contextSep))
		for i, field := range entry.Fields {
			if i > 0 {
				buf.WriteString(contextEntrySep)
			}
			buf.WriteString(f.bold.Render(field.Key + ":"))
			buf.WriteByte(' ')
			buf.WriteString(values[i])
		}
		buf.WriteByte('\n')
		return
	}

	buf.WriteByte('\n')
	for i, field := range entry.Fields {
		buf.WriteString(f.faint.Render(multilineIndent))
		buf.WriteString(f.bold.Render(field.Key))
		buf.WriteString(strings.Repeat(" ", keyWidth-len(field.Key)+2))
		buf.WriteString(values[i])
		buf.WriteByte('\n')
	}
}

// elapsed returns the time since the previous entry and records t.
func (f *PrettyFormatter) elapsed(t time.Time) time.Duration {
	if t.IsZero() {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var d time.Duration
	if !f.last.IsZero() && t.After(f.last) {
		d = t.Sub(f.last)
	}
	f.last = t
	return d
}

// formatTimeDiff renders d in the largest unit that keeps it at one or
// more: 0ms..999ms, 1s..59s, 1m..59m, 1h..23h, then days.
func formatTimeDiff(d time.Duration) string {
	switch {
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	case d < time.Minute:
		return strconv.FormatInt(int64(d/time.Second), 10) + "s"
	case d < time.Hour:
		return strconv.FormatInt(int64(d/time.Minute), 10) + "m"
	case d < 24*time.Hour:
		return strconv.FormatInt(int64(d/time.Hour), 10) + "h"
	default:
		return strconv.FormatInt(int64(d/(24*time.Hour)), 10) + "d"
	}
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func prettyValue(field core.Field) string {
	switch field.Type {
	case core.StringType, core.ErrorType:
		return strconv.Quote(field.Str)
	default:
		return field.StringValue()
	}
}

func multiline(values []string) bool {
	for _, v := range values {
		if strings.IndexByte(v, '\n') >= 0 {
			return true
		}
	}
	return false
}
