// Package cli implements the plog command line tool.
package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/filter"
	"github.com/philipp01105/plog/settings"
)

// EnvPrefix prefixes the environment variables bound to the global
// flags, e.g. PLOG_FILTER for --filter.
const EnvPrefix = "PLOG"

// NewRootCommand builds the plog command tree. Each call gets its own
// viper instance so commands can be executed repeatedly in tests.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "plog",
		Short: "Check and try out plog filter patterns",
		Long: `plog parses filter patterns the way plog loggers do, explains the
pattern syntax and shows which records a filter lets through.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "settings file (YAML)")
	root.PersistentFlags().StringP("filter", "f", "", "filter pattern, e.g. \"*@info+,!app:noisy:*\"")
	root.PersistentFlags().StringP("level", "l", "", "default level for patterns without one")
	root.PersistentFlags().Bool("pretty", false, "human readable output for demo")
	_ = v.BindPFlags(root.PersistentFlags())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newCheckCommand(v),
		newManualCommand(),
		newTestCommand(v),
		newDemoCommand(v),
	)
	return root
}

// settingsInput collects the settings given by --config, then applies
// --filter, --level and --pretty (or their PLOG_ variables) on top.
func settingsInput(v *viper.Viper) (settings.Input, error) {
	var in settings.Input
	if path := v.GetString("config"); path != "" {
		var err error
		if in, err = settings.LoadFile(path); err != nil {
			return settings.Input{}, err
		}
	}

	if v.IsSet("filter") && v.GetString("filter") != "" {
		pattern := v.GetString("filter")
		if in.Filter == nil {
			in.Filter = &settings.FilterInput{}
		}
		in.Filter.Pattern = &pattern
	}
	if v.IsSet("level") && v.GetString("level") != "" {
		level, err := parseLevel(v.GetString("level"))
		if err != nil {
			return settings.Input{}, err
		}
		if in.Filter == nil {
			in.Filter = &settings.FilterInput{}
		}
		in.Filter.Level = &level
	}
	if v.IsSet("pretty") {
		enabled := v.GetBool("pretty")
		if in.Pretty == nil {
			in.Pretty = &settings.PrettyInput{}
		}
		in.Pretty.Enabled = &enabled
	}
	return in, nil
}

// defaults returns the pattern defaults for --level, debug and above
// when it is not set.
func defaults(v *viper.Viper) (filter.Defaults, error) {
	level := core.DebugLevel
	if s := v.GetString("level"); s != "" {
		var err error
		if level, err = parseLevel(s); err != nil {
			return filter.Defaults{}, err
		}
	}
	return filter.Defaults{Level: filter.AtLevel(level, filter.Gte)}, nil
}

func parseLevel(s string) (core.Level, error) {
	if l, ok := core.LevelFromName(s); ok {
		return l, nil
	}
	if l, ok := core.LevelFromNumber(s); ok {
		return l, nil
	}
	return 0, errors.Errorf("unknown level %q, want one of %s", s, strings.Join(core.LevelNames(), ", "))
}

// parsePath splits "a:b" into segments. "" and "." name the root.
func parsePath(s string) ([]string, error) {
	if s == "" || s == filter.Root {
		return nil, nil
	}
	path := strings.Split(s, ":")
	for _, seg := range path {
		if !filter.ValidSegment(seg) {
			return nil, errors.Errorf("invalid path segment %q in %q", seg, s)
		}
	}
	return path, nil
}
