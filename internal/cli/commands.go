package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/filter"
	"github.com/philipp01105/plog/handler"
	"github.com/philipp01105/plog/handler/consolehandler"
	"github.com/philipp01105/plog/handler/filehandler"
	"github.com/philipp01105/plog/logger"
	"github.com/philipp01105/plog/settings"
)

// ErrInvalidFilter is returned by check when a pattern does not parse.
var ErrInvalidFilter = errors.New("invalid filter")

func newCheckCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check <filter>",
		Short: "Parse a filter and print each pattern in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := defaults(v)
			if err != nil {
				return err
			}
			results := filter.ParseAll(d, args[0])

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range results {
				if r.OK() {
					fmt.Fprintf(w, "%s\t%s\n", r.Input, r.Pattern)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if msg := filter.Render(results, ""); msg != "" {
				fmt.Fprint(cmd.ErrOrStderr(), msg)
				return ErrInvalidFilter
			}
			return nil
		},
	}
}

func newManualCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "manual",
		Short: "Explain the filter syntax",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), filter.Manual())
		},
	}
}

func newTestCommand(v *viper.Viper) *cobra.Command {
	var at, path string
	cmd := &cobra.Command{
		Use:   "test <filter>",
		Short: "Print pass or reject for one record",
		Example: `  plog test 'app:*@warn+' --at error --path app:db
  plog test '*,!app:noisy' --path app:noisy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := defaults(v)
			if err != nil {
				return err
			}
			level, err := parseLevel(at)
			if err != nil {
				return err
			}
			segments, err := parsePath(path)
			if err != nil {
				return err
			}

			patterns, msg := filter.Process(d, args[0], "")
			if msg != "" {
				fmt.Fprint(cmd.ErrOrStderr(), msg)
			}
			if filter.Test(patterns, filter.Record{Level: level, Path: segments}) {
				fmt.Fprintln(cmd.OutOrStdout(), "pass")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "reject")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", core.InfoLevel.Name(), "level of the record")
	cmd.Flags().StringVar(&path, "path", "", "logger path of the record, e.g. app:db (default root)")
	return cmd
}

// demoPaths are the loggers demo writes through.
var demoPaths = [][]string{
	nil,
	{"app"},
	{"app", "db"},
	{"app", "http"},
}

func newDemoCommand(v *viper.Viper) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Log a sample event at every level on a few loggers",
		Long: `demo writes one event per level through the loggers ., app, app:db and
app:http, configured from --config, --filter, --level, --pretty and the
environment (LOG_FILTER, LOG_LEVEL, LOG_PRETTY, APP_ENV).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := settingsInput(v)
			if err != nil {
				return err
			}
			m, err := settings.New(in, settings.WithDiagnostics(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			h, err := demoHandler(cmd.OutOrStdout(), output, m)
			if err != nil {
				return err
			}
			return runDemo(h, m)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "append to this file instead of stdout")
	return cmd
}

func demoHandler(out io.Writer, output string, m *settings.Manager) (handler.Handler, error) {
	f := logger.NewSettingsFormatter(m)
	if output != "" {
		fh, err := filehandler.NewFileHandler(filehandler.FileConfig{Filename: output, Formatter: f})
		if err != nil {
			return nil, err
		}
		return fh, nil
	}
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{Writer: out, Formatter: f}), nil
}

func runDemo(h handler.Handler, m *settings.Manager) error {
	root, err := logger.NewBuilder().WithHandler(h).WithSettings(m).Build()
	if err != nil {
		return multierr.Append(err, h.Close())
	}

	for _, path := range demoPaths {
		l := root
		for _, seg := range path {
			l = l.Child(seg)
		}
		for _, level := range core.Levels() {
			l.Log(level, level.Name()+" event", logger.Int("level", level.Number()))
		}
	}
	return root.Close()
}
