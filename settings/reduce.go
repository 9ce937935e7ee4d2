package settings

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/filter"
)

var (
	// ErrInvalidLevel is returned when LOG_LEVEL or a filter level is
	// not one of the six levels.
	ErrInvalidLevel = errors.New("invalid log level")
	// ErrInvalidPretty is returned when LOG_PRETTY is neither "true"
	// nor "false".
	ErrInvalidPretty = errors.New("invalid LOG_PRETTY value")
)

// Reduce returns the settings that result from applying in on top of
// prev. prev may be nil for the initial value. Invalid filter patterns
// do not fail the reduction: they are reported on diag, which may be
// nil, and the valid remainder is used. Reduce never modifies prev.
func Reduce(prev *Data, in Input, e Env, diag io.Writer) (*Data, error) {
	next := &Data{}

	var prevFilter *Filter
	if prev != nil {
		prevFilter = &prev.Filter
	}
	f, err := reduceFilter(prevFilter, in.Filter, e, diag)
	if err != nil {
		return nil, err
	}
	next.Filter = f

	var prevPretty *Pretty
	if prev != nil {
		prevPretty = &prev.Pretty
	}
	next.Pretty, err = reducePretty(prevPretty, in.Pretty, e)
	if err != nil {
		return nil, err
	}

	var prevInclude *Include
	if prev != nil {
		prevInclude = &prev.Include
	}
	next.Include = reduceInclude(prevInclude, in.Include, e)

	return next, nil
}

func reduceFilter(prev *Filter, in *FilterInput, e Env, diag io.Writer) (Filter, error) {
	if prev == nil {
		base, err := defaultFilter(e, diag)
		if err != nil {
			return Filter{}, err
		}
		prev = &base
	}
	if in.empty() {
		return *prev, nil
	}

	pattern := prev.Input
	if in.Pattern != nil {
		pattern = *in.Pattern
	}
	defaults := prev.Defaults
	if in.Level != nil {
		if !in.Level.Valid() {
			return Filter{}, errors.Wrapf(ErrInvalidLevel, "filter level %d", int(*in.Level))
		}
		defaults = filter.Defaults{Level: filter.AtLevel(*in.Level, filter.Gte)}
	}

	return Filter{
		Input:    pattern,
		Defaults: defaults,
		Patterns: processPattern(defaults, pattern, "", diag),
	}, nil
}

func defaultFilter(e Env, diag io.Writer) (Filter, error) {
	level := core.DebugLevel
	if e.Production() {
		level = core.InfoLevel
	}
	if e.Level != "" {
		lvl, ok := core.LevelFromName(e.Level)
		if !ok {
			return Filter{}, errors.Wrapf(ErrInvalidLevel, "LOG_LEVEL=%q, must be one of %s",
				e.Level, strings.Join(core.LevelNames(), ", "))
		}
		level = lvl
	}
	defaults := filter.Defaults{Level: filter.AtLevel(level, filter.Gte)}

	if e.Filter != "" {
		patterns, msg := filter.Process(defaults, e.Filter, "environment variable LOG_FILTER")
		report(diag, msg)
		if patterns != nil {
			return Filter{Input: e.Filter, Defaults: defaults, Patterns: patterns}, nil
		}
	}

	return Filter{
		Input:    DefaultPattern,
		Defaults: defaults,
		Patterns: filter.MustParse(defaults, DefaultPattern),
	}, nil
}

// processPattern parses pattern and falls back to DefaultPattern when
// nothing in it is valid.
func processPattern(defaults filter.Defaults, pattern, source string, diag io.Writer) []filter.Pattern {
	patterns, msg := filter.Process(defaults, pattern, source)
	report(diag, msg)
	if patterns == nil {
		return filter.MustParse(defaults, DefaultPattern)
	}
	return patterns
}

func report(diag io.Writer, msg string) {
	if diag == nil || msg == "" {
		return
	}
	_, _ = io.WriteString(diag, msg)
}

func reducePretty(prev *Pretty, in *PrettyInput, e Env) (Pretty, error) {
	if in == nil {
		in = &PrettyInput{}
	}
	p := Pretty{Color: true, TimeDiff: true}
	if prev != nil {
		p = *prev
	}
	if in.Color != nil {
		p.Color = *in.Color
	}
	if in.LevelLabel != nil {
		p.LevelLabel = *in.LevelLabel
	}
	if in.TimeDiff != nil {
		p.TimeDiff = *in.TimeDiff
	}

	switch {
	case in.Enabled != nil:
		p.Enabled = *in.Enabled
	case prev != nil:
	default:
		enabled, err := prettyFromEnv(e)
		if err != nil {
			return Pretty{}, err
		}
		p.Enabled = enabled
	}
	return p, nil
}

func prettyFromEnv(e Env) (bool, error) {
	switch strings.ToLower(e.Pretty) {
	case "":
		return e.IsTTY, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidPretty, "LOG_PRETTY=%q, must be true or false", e.Pretty)
	}
}

func reduceInclude(prev *Include, in *IncludeInput, e Env) Include {
	var inc Include
	switch {
	case prev != nil:
		inc = *prev
	case e.Production():
		inc = Include{Time: true, PID: true, Hostname: true}
	}
	if in == nil {
		return inc
	}
	if in.Time != nil {
		inc.Time = *in.Time
	}
	if in.PID != nil {
		inc.PID = *in.PID
	}
	if in.Hostname != nil {
		inc.Hostname = *in.Hostname
	}
	return inc
}
