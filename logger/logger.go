package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/filter"
	"github.com/philipp01105/plog/handler"
	"github.com/philipp01105/plog/handler/consolehandler"
	"github.com/philipp01105/plog/settings"
)

// callerSkip is the runtime.Caller depth of user code seen from log
// when called through a Logger method.
const callerSkip = 3

var (
	processPID = os.Getpid()
	hostname   = sync.OnceValue(func() string {
		h, _ := os.Hostname()
		return h
	})
)

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	settings      *settings.Manager
	path          []string
	fields        []core.Field
	includeCaller bool
	coarseClock   bool
	recycleEntry  bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	settings      *settings.Manager
	path          []string
	fields        []core.Field
	includeCaller bool
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithHandler sets the handler. Without one the logger writes to
// stdout, as JSON or pretty text depending on the settings.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithSettings sets the settings the logger filters and formats with.
// Loggers sharing a Manager all follow its updates.
func (b *Builder) WithSettings(m *settings.Manager) *Builder {
	b.settings = m
	return b
}

// WithName sets the path of the logger. No segments means the root.
func (b *Builder) WithName(path ...string) *Builder {
	b.path = append(b.path[:0:0], path...)
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock timestamps entries from the coarse clock instead of
// time.Now. The clock is started on Build.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance. It fails when a path segment is
// not a valid name or when the settings cannot be resolved from the
// environment.
func (b *Builder) Build() (*Logger, error) {
	for _, seg := range b.path {
		if !filter.ValidSegment(seg) {
			return nil, errors.Errorf("invalid logger name %q", seg)
		}
	}

	m := b.settings
	if m == nil {
		var err error
		if m, err = settings.New(settings.Input{}); err != nil {
			return nil, errors.Wrap(err, "failed to resolve settings")
		}
	}

	h := b.handler
	if h == nil {
		h = consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Formatter: NewSettingsFormatter(m),
		})
	}

	if b.coarseClock {
		core.StartCoarseClock()
	}

	return &Logger{
		handler:       h,
		settings:      m,
		path:          b.path,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		coarseClock:   b.coarseClock,
		recycleEntry:  handler.CanRecycle(h),
	}, nil
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation).
// A key that is already pinned takes the new value.
func (l *Logger) With(fields ...core.Field) *Logger {
	c := l.clone()
	c.fields = core.MergeFields(make([]core.Field, 0, len(l.fields)+len(fields)), l.fields, fields)
	return c
}

// Child returns a logger one level below l. It panics when name is not
// a valid path segment.
func (l *Logger) Child(name string) *Logger {
	if !filter.ValidSegment(name) {
		panic(fmt.Sprintf("logger: invalid child name %q", name))
	}
	c := l.clone()
	c.path = make([]string, len(l.path)+1)
	copy(c.path, l.path)
	c.path[len(l.path)] = name
	return c
}

// Path returns the segments naming the logger. The root has none.
func (l *Logger) Path() []string {
	return append([]string(nil), l.path...)
}

// Settings returns the manager the logger reads its settings from.
func (l *Logger) Settings() *settings.Manager {
	return l.settings
}

// Enabled reports whether the current filter accepts level for this
// logger. Use it to skip expensive argument construction.
func (l *Logger) Enabled(level core.Level) bool {
	return l.settings.Current().Allows(level, l.path)
}

// Log logs an event at the specified level
func (l *Logger) Log(level core.Level, event string, fields ...core.Field) {
	l.log(callerSkip, level, event, fields)
}

// log runs the filter first; rejected records cost no allocation.
func (l *Logger) log(skip int, level core.Level, event string, fields []core.Field) {
	if l.handler == nil {
		return
	}

	data := l.settings.Current()
	if !data.Allows(level, l.path) {
		return
	}

	entry := core.GetEntry()
	if l.coarseClock {
		entry.Time = core.CoarseNow()
	} else {
		entry.Time = time.Now()
	}
	entry.Level = level
	entry.Event = event
	entry.Path = l.path
	entry.Fields = core.MergeFields(entry.Fields, l.fields, fields)

	if data.Include.PID {
		entry.PID = processPID
	}
	if data.Include.Hostname {
		entry.Hostname = hostname()
	}
	if l.includeCaller {
		entry.Caller = core.GetCaller(skip)
	}

	if err := l.handler.Handle(entry); err != nil {
		return
	}

	// Return entry to pool if handler supports it
	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Trace logs a trace event
func (l *Logger) Trace(event string, fields ...core.Field) {
	l.log(callerSkip, core.TraceLevel, event, fields)
}

// Debug logs a debug event
func (l *Logger) Debug(event string, fields ...core.Field) {
	l.log(callerSkip, core.DebugLevel, event, fields)
}

// Info logs an info event
func (l *Logger) Info(event string, fields ...core.Field) {
	l.log(callerSkip, core.InfoLevel, event, fields)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, fields ...core.Field) {
	l.log(callerSkip, core.WarnLevel, event, fields)
}

// Error logs an error event
func (l *Logger) Error(event string, fields ...core.Field) {
	l.log(callerSkip, core.ErrorLevel, event, fields)
}

// Fatal logs a fatal event. It does not exit the program.
func (l *Logger) Fatal(event string, fields ...core.Field) {
	l.log(callerSkip, core.FatalLevel, event, fields)
}

// logf formats only when the filter accepts the record.
func (l *Logger) logf(level core.Level, format string, args []interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.log(callerSkip+1, level, fmt.Sprintf(format, args...), nil)
}

// Tracef logs a trace event with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.logf(core.TraceLevel, format, args)
}

// Debugf logs a debug event with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(core.DebugLevel, format, args)
}

// Infof logs an info event with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(core.InfoLevel, format, args)
}

// Warnf logs a warning event with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(core.WarnLevel, format, args)
}

// Errorf logs an error event with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(core.ErrorLevel, format, args)
}

// Fatalf logs a fatal event with formatting. It does not exit the program.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logf(core.FatalLevel, format, args)
}

// Close closes the logger's handler. Loggers derived with Child or With
// share the handler, so close only once.
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
