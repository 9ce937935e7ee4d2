package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log entry. Levels are
// totally ordered by their numeric rank, lowest urgency first.
type Level int8

const (
	// TraceLevel for very fine grained diagnostics
	TraceLevel Level = iota + 1
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for failures the process cannot recover from
	FatalLevel
)

var levelNames = [...]string{
	TraceLevel: "trace",
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

var levelLabels = [...]string{
	TraceLevel: "TRACE",
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
}

// Valid reports whether l is one of the six defined levels.
func (l Level) Valid() bool {
	return l >= TraceLevel && l <= FatalLevel
}

// String returns the upper-case label of the level
func (l Level) String() string {
	if !l.Valid() {
		return "UNKNOWN"
	}
	return levelLabels[l]
}

// Name returns the lower-case name of the level as used in filter patterns.
func (l Level) Name() string {
	if !l.Valid() {
		return "unknown"
	}
	return levelNames[l]
}

// Number returns the numeric rank of the level, 1 through 6.
func (l Level) Number() int {
	return int(l)
}

// MarshalText implements encoding.TextMarshaler using the level name.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid level %d", int(l))
	}
	return []byte(l.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both names
// (case-insensitive) and numbers are accepted.
func (l *Level) UnmarshalText(text []byte) error {
	s := string(text)
	if lvl, ok := LevelFromName(s); ok {
		*l = lvl
		return nil
	}
	if lvl, ok := LevelFromNumber(s); ok {
		*l = lvl
		return nil
	}
	return fmt.Errorf("invalid level %q: must be one of %s", s, strings.Join(LevelNames(), ", "))
}

// LevelFromName converts a level name to a Level. Matching is
// case-insensitive.
func LevelFromName(s string) (Level, bool) {
	for _, l := range Levels() {
		if strings.EqualFold(levelNames[l], s) {
			return l, true
		}
	}
	return 0, false
}

// LevelFromNumber converts an exact numeric string ("1" through "6")
// to a Level.
func LevelFromNumber(s string) (Level, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return 0, false
	}
	return Level(s[0] - '0'), true
}

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
}

// LevelNames returns every level name in ascending order.
func LevelNames() []string {
	names := make([]string, 0, len(levelNames)-1)
	for _, l := range Levels() {
		names = append(names, levelNames[l])
	}
	return names
}
