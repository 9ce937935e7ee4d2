package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/plog/filter"
)

// executeCommand runs a fresh command tree with args and returns what
// it wrote to stdout and stderr.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// cleanEnv pins the variables settings read so the host environment
// does not leak into demo output.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOG_LEVEL", "LOG_FILTER", "PLOG_FILTER", "PLOG_LEVEL", "PLOG_PRETTY", "PLOG_CONFIG"} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("APP_ENV", "development")
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "plog", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"check", "manual", "test", "demo"})

	for _, f := range []string{"config", "filter", "level", "pretty"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(f), f)
	}
}

func TestCheck(t *testing.T) {
	out, errOut, err := executeCommand("check", "app:*@warn+, !app:db")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	lines := nonEmptyLines(out)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "app:*@warn+"))
	assert.True(t, strings.HasSuffix(lines[0], "app:*@warn+"))
	assert.True(t, strings.HasPrefix(lines[1], "!app:db"))
	assert.True(t, strings.HasSuffix(lines[1], "!app:db@debug+"))
}

func TestCheck_Level(t *testing.T) {
	out, _, err := executeCommand("check", "app", "--level", "warn")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "app@warn+"))
}

func TestCheck_Invalid(t *testing.T) {
	out, errOut, err := executeCommand("check", "app,1bad")
	require.ErrorIs(t, err, ErrInvalidFilter)

	assert.Contains(t, out, "app@debug+")
	assert.Contains(t, errOut, "One of the 2 filter patterns is invalid and was ignored:")
	assert.Contains(t, errOut, `invalid filter pattern "1bad"`)
}

func TestCheck_NeedsOneArgument(t *testing.T) {
	_, _, err := executeCommand("check")
	assert.Error(t, err)
}

func TestManual(t *testing.T) {
	out, _, err := executeCommand("manual")
	require.NoError(t, err)
	assert.Equal(t, filter.Manual(), out)
}

func TestTestCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"level passes", []string{"test", "app:*@warn+", "--at", "error", "--path", "app:db"}, "pass"},
		{"level fails", []string{"test", "app:*@warn+", "--at", "info", "--path", "app:db"}, "reject"},
		{"negated", []string{"test", "*,!app:noisy", "--path", "app:noisy"}, "reject"},
		{"other path", []string{"test", "*,!app:noisy", "--path", "app:quiet"}, "pass"},
		{"root", []string{"test", ".@info", "--path", "."}, "pass"},
		{"numeric level", []string{"test", "*@4+", "--at", "3"}, "reject"},
		{"default level", []string{"test", "app", "--at", "info", "--path", "app", "--level", "error"}, "reject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestTestCommand_Errors(t *testing.T) {
	_, _, err := executeCommand("test", "*", "--at", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown level "loud"`)

	_, _, err = executeCommand("test", "*", "--path", "app:1x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid path segment "1x"`)
}

func TestTestCommand_InvalidPatternReported(t *testing.T) {
	out, errOut, err := executeCommand("test", "app,?", "--path", "app")
	require.NoError(t, err)
	assert.Equal(t, "pass\n", out)
	assert.Contains(t, errOut, `invalid filter pattern "?"`)
}

func TestDemo_Filter(t *testing.T) {
	cleanEnv(t)

	out, _, err := executeCommand("demo", "--filter", "app:db@warn+")
	require.NoError(t, err)

	lines := nonEmptyLines(out)
	require.Len(t, lines, 3)
	assert.Equal(t, `{"level":4,"event":"warn event","path":["app","db"],"context":{"level":4}}`, lines[0])
	assert.Contains(t, lines[2], `"event":"fatal event"`)
}

func TestDemo_EnvPrefix(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PLOG_FILTER", "app:http@fatal")

	out, _, err := executeCommand("demo")
	require.NoError(t, err)

	lines := nonEmptyLines(out)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"path":["app","http"]`)
}

func TestDemo_ConfigFile(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "plog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: app@error+\n"), 0o600))

	out, _, err := executeCommand("demo", "--config", path)
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 2)

	// Flags override the file.
	out, _, err = executeCommand("demo", "--config", path, "--filter", "app:*@fatal")
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 3)
}

func TestDemo_Output(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "demo.log")

	out, _, err := executeCommand("demo", "--filter", "app:db@warn+", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(string(b)), 3)
}

func TestDemo_MissingConfig(t *testing.T) {
	cleanEnv(t)
	_, _, err := executeCommand("demo", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDemo_Pretty(t *testing.T) {
	cleanEnv(t)

	out, _, err := executeCommand("demo", "--pretty", "--filter", "app@info")
	require.NoError(t, err)

	lines := nonEmptyLines(out)
	require.Len(t, lines, 1)
	assert.False(t, strings.HasPrefix(lines[0], "{"))
	assert.Contains(t, lines[0], "info event")
}

func TestDemo_InvalidFilterFallsBack(t *testing.T) {
	cleanEnv(t)

	out, errOut, err := executeCommand("demo", "--filter", "app@loud")
	require.NoError(t, err)
	assert.Contains(t, errOut, "is invalid and was ignored")
	// The fallback "*" lets everything at debug and above through.
	assert.Len(t, nonEmptyLines(out), 4*5)
}

func TestParsePath(t *testing.T) {
	path, err := parsePath("")
	require.NoError(t, err)
	assert.Nil(t, path)

	path, err = parsePath(".")
	require.NoError(t, err)
	assert.Nil(t, path)

	path, err = parsePath("app:db")
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "db"}, path)
}
