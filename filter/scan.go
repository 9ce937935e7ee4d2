package filter

import (
	"github.com/philipp01105/plog/core"
)

// targetKind is the first token of a target: a segment name, the
// descendants wildcard or the root marker.
type targetKind uint8

const (
	targetName targetKind = iota
	targetWildcard
	targetRoot
)

// target is the decoded last segment of a pattern, e.g. "db@warn+".
type target struct {
	kind  targetKind
	name  string
	level LevelMatcher
	// hasLevel is false when the target carried no level clause.
	hasLevel bool
}

// scanState is a state of the target scanner. The accepted language is
//
//	target := head [ '@' level ]
//	head   := name | '*' | '.'
//	level  := '*' | ( levelName | levelNumber ) [ '+' | '-' ]
//
// Transitions:
//
//	state      input                  next
//	---------  ---------------------  ---------
//	start      letter, '_'            name
//	start      '*'                    headEnd
//	start      '.'                    headEnd
//	name       letter, digit, '_'     name
//	name       '@'                    levelStart
//	name       end                    accept
//	headEnd    '@'                    levelStart
//	headEnd    end                    accept
//	levelStart '*'                    levelEnd
//	levelStart letter, digit          levelWord
//	levelWord  letter, digit          levelWord
//	levelWord  '+', '-'               levelEnd
//	levelWord  end                    accept
//	levelEnd   end                    accept
//
// Any other input rejects. The level word must then resolve to a level
// name or number.
type scanState uint8

const (
	stateStart scanState = iota
	stateName
	stateHeadEnd
	stateLevelStart
	stateLevelWord
	stateLevelEnd
)

// scanTarget decodes a target token. It reports false when tok is not
// in the target language.
func scanTarget(tok string) (target, bool) {
	var t target
	state := stateStart
	nameEnd, wordStart, wordEnd := 0, 0, 0
	comp := Eq

	for i := 0; i < len(tok); i++ {
		c := tok[i]
		switch state {
		case stateStart:
			switch {
			case isIdentStart(c):
				t.kind = targetName
				state = stateName
			case c == wildcard[0]:
				t.kind = targetWildcard
				state = stateHeadEnd
			case c == Root[0]:
				t.kind = targetRoot
				state = stateHeadEnd
			default:
				return target{}, false
			}
		case stateName:
			switch {
			case isIdentPart(c):
			case c == levelDelim:
				nameEnd = i
				state = stateLevelStart
			default:
				return target{}, false
			}
		case stateHeadEnd:
			if c != levelDelim {
				return target{}, false
			}
			state = stateLevelStart
		case stateLevelStart:
			switch {
			case c == wildcard[0]:
				t.level = AnyLevel()
				state = stateLevelEnd
			case isAlnum(c):
				wordStart = i
				state = stateLevelWord
			default:
				return target{}, false
			}
		case stateLevelWord:
			switch {
			case isAlnum(c):
			case c == levelGte || c == levelLte:
				wordEnd = i
				if c == levelGte {
					comp = Gte
				} else {
					comp = Lte
				}
				state = stateLevelEnd
			default:
				return target{}, false
			}
		case stateLevelEnd:
			return target{}, false
		}
	}

	switch state {
	case stateName:
		t.name = tok
		return t, true
	case stateHeadEnd:
		return t, true
	case stateLevelWord:
		wordEnd = len(tok)
	case stateLevelEnd:
		// wordEnd already recorded, or the level is '*'
	default:
		return target{}, false
	}

	if t.kind == targetName {
		t.name = tok[:nameEnd]
	}
	t.hasLevel = true
	if t.level.Any {
		return t, true
	}
	lvl, ok := lookupLevel(tok[wordStart:wordEnd])
	if !ok {
		return target{}, false
	}
	t.level = AtLevel(lvl, comp)
	return t, true
}

// lookupLevel resolves a level word. Names are lower case as written in
// the level table; numbers are exactly "1" through "6".
func lookupLevel(word string) (core.Level, bool) {
	if lvl, ok := core.LevelFromNumber(word); ok {
		return lvl, true
	}
	for _, lvl := range core.Levels() {
		if lvl.Name() == word {
			return lvl, true
		}
	}
	return 0, false
}

// ValidSegment reports whether s is a valid path segment name:
// [A-Za-z_][A-Za-z0-9_]*.
func ValidSegment(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isLetter(c) || isDigit(c)
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isIdentPart(c byte) bool {
	return isAlnum(c) || c == '_'
}
