package settings

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/plog/core"
)

// Input is a partial settings update. Nil fields keep their previous
// value.
type Input struct {
	Filter  *FilterInput  `yaml:"filter"`
	Pretty  *PrettyInput  `yaml:"pretty"`
	Include *IncludeInput `yaml:"data"`
}

// FilterInput updates the filter. In YAML a plain string is shorthand
// for {pattern: <string>}.
type FilterInput struct {
	Pattern *string
	// Level replaces the default level; patterns without a level clause
	// then match this level and above.
	Level *core.Level
}

// PrettyInput updates pretty printing. In YAML a plain boolean is
// shorthand for {enabled: <bool>}.
type PrettyInput struct {
	Enabled    *bool `yaml:"enabled"`
	Color      *bool `yaml:"color"`
	LevelLabel *bool `yaml:"levelLabel"`
	TimeDiff   *bool `yaml:"timeDiff"`
}

// IncludeInput updates the attached process data.
type IncludeInput struct {
	Time     *bool `yaml:"time"`
	PID      *bool `yaml:"pid"`
	Hostname *bool `yaml:"hostname"`
}

// FilterPattern is shorthand for an Input that only sets the pattern.
func FilterPattern(pattern string) Input {
	return Input{Filter: &FilterInput{Pattern: &pattern}}
}

// PrettyEnabled is shorthand for an Input that only toggles pretty output.
func PrettyEnabled(enabled bool) Input {
	return Input{Pretty: &PrettyInput{Enabled: &enabled}}
}

func (in *FilterInput) empty() bool {
	return in == nil || (in.Pattern == nil && in.Level == nil)
}

// UnmarshalYAML accepts a pattern string or a mapping.
func (in *FilterInput) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var pattern string
		if err := node.Decode(&pattern); err != nil {
			return err
		}
		in.Pattern = &pattern
		return nil
	}

	var raw struct {
		Pattern *string `yaml:"pattern"`
		Level   *string `yaml:"level"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	in.Pattern = raw.Pattern
	if raw.Level != nil {
		var lvl core.Level
		if err := lvl.UnmarshalText([]byte(*raw.Level)); err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		in.Level = &lvl
	}
	return nil
}

// UnmarshalYAML accepts a boolean or a mapping.
func (in *PrettyInput) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return err
		}
		in.Enabled = &enabled
		return nil
	}

	type plain PrettyInput
	return node.Decode((*plain)(in))
}
