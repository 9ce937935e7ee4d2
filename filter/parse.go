package filter

import (
	"strings"

	"go.uber.org/multierr"
)

const segmentRule = "[A-Za-z_][A-Za-z0-9_]*"

// Result is the outcome of parsing one piece of a filter string.
// Exactly one of Pattern and Err is meaningful: Err is nil on success.
type Result struct {
	Input   string
	Pattern Pattern
	Err     *ParseError
}

// OK reports whether the piece parsed.
func (r Result) OK() bool {
	return r.Err == nil
}

// ParseAll parses a full filter string, which may be a comma separated
// list of patterns. Each piece is parsed on its own, so some pieces may
// succeed while others fail. A string without any pattern yields a
// single failed Result covering the whole input.
func ParseAll(defaults Defaults, input string) []Result {
	pieces := splitPatterns(input)
	if len(pieces) == 0 {
		return []Result{{
			Input: input,
			Err:   &ParseError{Pattern: input, Hint: "at least one pattern must be present"},
		}}
	}

	results := make([]Result, len(pieces))
	for i, piece := range pieces {
		p, err := parseOne(defaults, piece)
		results[i] = Result{Input: piece, Pattern: p, Err: err}
	}
	return results
}

// ParseOne parses a single pattern. The piece must already be trimmed
// and free of list separators. The returned error is a *ParseError.
func ParseOne(defaults Defaults, piece string) (Pattern, error) {
	p, err := parseOne(defaults, piece)
	if err != nil {
		return Pattern{}, err
	}
	return p, nil
}

// Parse parses a filter string and returns the patterns that parsed
// together with every failure combined into one error. The error is nil
// only when every piece parsed; use multierr.Errors to list failures.
func Parse(defaults Defaults, input string) ([]Pattern, error) {
	results := ParseAll(defaults, input)
	patterns := make([]Pattern, 0, len(results))
	var err error
	for _, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, r.Err)
			continue
		}
		patterns = append(patterns, r.Pattern)
	}
	return patterns, err
}

// MustParse is like Parse but panics on the first invalid piece. It is
// meant for patterns that are constants in the program.
func MustParse(defaults Defaults, input string) []Pattern {
	results := ParseAll(defaults, input)
	patterns := make([]Pattern, len(results))
	for i, r := range results {
		if r.Err != nil {
			panic(r.Err.Error())
		}
		patterns[i] = r.Pattern
	}
	return patterns
}

// Process parses a filter string for use by a running logger. It
// returns the valid patterns, or nil when none parsed, and a rendered
// diagnostic describing the failures, or "" when there were none.
// source names where the input came from, e.g. "environment variable
// LOG_FILTER"; it may be empty.
func Process(defaults Defaults, input, source string) ([]Pattern, string) {
	results := ParseAll(defaults, input)
	var patterns []Pattern
	for _, r := range results {
		if r.OK() {
			patterns = append(patterns, r.Pattern)
		}
	}
	return patterns, Render(results, source)
}

func splitPatterns(input string) []string {
	raw := strings.Split(input, patternDelim)
	pieces := raw[:0]
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

func parseOne(defaults Defaults, piece string) (Pattern, *ParseError) {
	rest := piece
	negate := strings.HasPrefix(rest, negateMark)
	if negate {
		rest = rest[len(negateMark):]
	}

	segs := strings.Split(rest, pathDelim)
	if segs[0] != Root {
		segs = append([]string{Root}, segs...)
	}

	// "prefix::*" leaves an empty segment before the wildcard.
	exclusive := false
	if n := len(segs); n >= 3 && segs[n-2] == "" && strings.HasPrefix(segs[n-1], wildcard) {
		exclusive = true
		segs = append(segs[:n-2], segs[n-1])
	}

	last := len(segs) - 1
	tok := segs[last]
	parents := segs[:last]

	t, ok := scanTarget(tok)
	if !ok {
		err := &ParseError{Pattern: piece}
		if tok == "" {
			err.Hint = `must pass a path (e.g. "foo"), the root (".") or a descendants wildcard ("*")`
		}
		return Pattern{}, err
	}

	// parents[0] is the implicit root; everything after must be a name.
	if len(parents) > 0 {
		for _, seg := range parents[1:] {
			if !ValidSegment(seg) {
				return Pattern{}, &ParseError{
					Pattern: piece,
					Hint:    "path segment names must match " + segmentRule,
				}
			}
		}
	}

	prefix := strings.Join(parents, pathDelim)

	var path PathMatcher
	switch t.kind {
	case targetWildcard:
		path = Subtree(prefix, !exclusive)
	case targetRoot:
		if len(parents) > 1 {
			return Pattern{}, &ParseError{
				Pattern: piece,
				Hint:    `the root (".") can only start a path`,
			}
		}
		path = Exact(Root)
	default:
		path = Exact(prefix + pathDelim + t.name)
	}

	level := defaults.Level
	if t.hasLevel {
		level = t.level
	}

	return Pattern{
		Input:  piece,
		Negate: negate,
		Path:   path,
		Level:  level,
	}, nil
}
