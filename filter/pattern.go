package filter

import (
	"strings"

	"github.com/philipp01105/plog/core"
)

const (
	// Root is the reserved path segment for the top of the logger tree.
	Root = "."

	pathDelim    = ":"
	patternDelim = ","
	negateMark   = "!"
	wildcard     = "*"
	levelDelim   = '@'
	levelGte     = '+'
	levelLte     = '-'
)

// Comparison is the operator a LevelMatcher applies between the level
// of a record and its own level.
type Comparison uint8

const (
	// Eq matches records at exactly the level
	Eq Comparison = iota
	// Gte matches records at the level or above
	Gte
	// Lte matches records at the level or below
	Lte
)

// String returns the short name of the comparison
func (c Comparison) String() string {
	switch c {
	case Eq:
		return "eq"
	case Gte:
		return "gte"
	case Lte:
		return "lte"
	default:
		return "unknown"
	}
}

// LevelMatcher selects records by level. When Any is set every level
// matches and Value and Comp are ignored.
type LevelMatcher struct {
	Any   bool
	Value core.Level
	Comp  Comparison
}

// AnyLevel returns a matcher accepting every level.
func AnyLevel() LevelMatcher {
	return LevelMatcher{Any: true}
}

// AtLevel returns a matcher comparing against level with comp.
func AtLevel(level core.Level, comp Comparison) LevelMatcher {
	return LevelMatcher{Value: level, Comp: comp}
}

// Match reports whether a record at level l is selected.
func (m LevelMatcher) Match(l core.Level) bool {
	if m.Any {
		return true
	}
	switch m.Comp {
	case Gte:
		return l >= m.Value
	case Lte:
		return l <= m.Value
	default:
		return l == m.Value
	}
}

// String renders the matcher in pattern syntax without the '@'.
func (m LevelMatcher) String() string {
	if m.Any {
		return wildcard
	}
	switch m.Comp {
	case Gte:
		return m.Value.Name() + string(levelGte)
	case Lte:
		return m.Value.Name() + string(levelLte)
	default:
		return m.Value.Name()
	}
}

// PathKind tags the variant held by a PathMatcher.
type PathKind uint8

const (
	// ExactPath matches one logger path
	ExactPath PathKind = iota
	// SubtreePath matches the descendants of a prefix
	SubtreePath
)

// PathMatcher selects records by logger path. Value is a root-anchored,
// colon joined path such as ".:app:db" (or "." for the root itself).
// For ExactPath the record path must equal Value. For SubtreePath the
// record path must lie below Value; IncludeParent additionally accepts
// Value itself.
type PathMatcher struct {
	Kind          PathKind
	Value         string
	IncludeParent bool
}

// Exact returns a matcher for exactly one path.
func Exact(value string) PathMatcher {
	return PathMatcher{Kind: ExactPath, Value: value}
}

// Subtree returns a matcher for the descendants of prefix.
func Subtree(prefix string, includeParent bool) PathMatcher {
	return PathMatcher{Kind: SubtreePath, Value: prefix, IncludeParent: includeParent}
}

// Match reports whether the rendered record path is selected.
func (m PathMatcher) Match(recordPath string) bool {
	if m.Kind == ExactPath {
		return recordPath == m.Value
	}
	if recordPath == m.Value {
		return m.IncludeParent
	}
	// Prefix must end on a segment boundary: ".:app" covers ".:app:db"
	// but not ".:apple".
	n := len(m.Value)
	return len(recordPath) > n && recordPath[n] == pathDelim[0] && recordPath[:n] == m.Value
}

// String renders the matcher in pattern syntax. The implicit root is
// left out unless it is the whole path.
func (m PathMatcher) String() string {
	rel := strings.TrimPrefix(strings.TrimPrefix(m.Value, Root), pathDelim)
	if m.Kind == ExactPath {
		if rel == "" {
			return Root
		}
		return rel
	}
	switch {
	case rel == "" && m.IncludeParent:
		return wildcard
	case rel == "":
		return Root + pathDelim + pathDelim + wildcard
	case m.IncludeParent:
		return rel + pathDelim + wildcard
	default:
		return rel + pathDelim + pathDelim + wildcard
	}
}

// Pattern is one parsed clause of a filter string.
type Pattern struct {
	// Input is the sub-pattern text the pattern was parsed from.
	Input  string
	Negate bool
	Path   PathMatcher
	Level  LevelMatcher
}

// String renders the pattern in canonical syntax with an explicit
// level clause. Parsing the result yields an equivalent pattern.
func (p Pattern) String() string {
	var b strings.Builder
	if p.Negate {
		b.WriteString(negateMark)
	}
	b.WriteString(p.Path.String())
	b.WriteByte(levelDelim)
	b.WriteString(p.Level.String())
	return b.String()
}

// Defaults holds the criteria applied to patterns that leave them out.
type Defaults struct {
	Level LevelMatcher
}

// Record is the part of a log call the filter looks at.
type Record struct {
	Level core.Level
	// Path is the logger path, empty for the root logger.
	Path []string
}

// PathString renders the record path the way PathMatcher expects it:
// "." for the root, ".:a:b" otherwise.
func (r Record) PathString() string {
	if len(r.Path) == 0 {
		return Root
	}
	n := len(Root)
	for _, seg := range r.Path {
		n += len(pathDelim) + len(seg)
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteString(Root)
	for _, seg := range r.Path {
		b.WriteString(pathDelim)
		b.WriteString(seg)
	}
	return b.String()
}
