package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/plog/core"
)

func TestParseYAMLShorthands(t *testing.T) {
	in, err := ParseYAML([]byte("filter: \"app:*\"\npretty: true\n"))
	require.NoError(t, err)
	require.NotNil(t, in.Filter)
	assert.Equal(t, "app:*", *in.Filter.Pattern)
	assert.Nil(t, in.Filter.Level)
	require.NotNil(t, in.Pretty)
	assert.True(t, *in.Pretty.Enabled)
	assert.Nil(t, in.Pretty.Color)
	assert.Nil(t, in.Include)
}

func TestParseYAMLFull(t *testing.T) {
	src := `
filter:
  pattern: "*,!db"
  level: warn
pretty:
  enabled: false
  color: false
  levelLabel: true
  timeDiff: false
data:
  time: true
  pid: false
`
	in, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "*,!db", *in.Filter.Pattern)
	assert.Equal(t, core.WarnLevel, *in.Filter.Level)
	assert.Equal(t, PrettyInput{Enabled: ptr(false), Color: ptr(false), LevelLabel: ptr(true), TimeDiff: ptr(false)}, *in.Pretty)
	assert.Equal(t, IncludeInput{Time: ptr(true), PID: ptr(false)}, *in.Include)
}

func TestParseYAMLLevelNumber(t *testing.T) {
	in, err := ParseYAML([]byte("filter:\n  level: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, core.ErrorLevel, *in.Filter.Level)
	assert.Nil(t, in.Filter.Pattern)
}

func TestParseYAMLErrors(t *testing.T) {
	for _, src := range []string{
		"filter:\n  level: loud\n",
		"pretty: maybe\n",
		"colour: true\n",
	} {
		_, err := ParseYAML([]byte(src))
		assert.Error(t, err, src)
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	in, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, Input{}, in)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: web\ndata:\n  hostname: true\n"), 0o600))

	in, err := LoadFile(path)
	require.NoError(t, err)

	d, err := Reduce(nil, in, Env{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "web", d.Filter.Input)
	assert.True(t, d.Include.Hostname)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
