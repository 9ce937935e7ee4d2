package logger

import (
	"strings"

	"github.com/philipp01105/plog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel = core.TraceLevel
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
)

// ParseLevel converts a level name ("warn", "WARN", "warning") or
// number ("4") to a Level. Unknown input gives InfoLevel.
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return WarnLevel
	}
	if l, ok := core.LevelFromName(s); ok {
		return l
	}
	if l, ok := core.LevelFromNumber(s); ok {
		return l
	}
	return InfoLevel
}
