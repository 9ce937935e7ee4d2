package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFrom(t *testing.T) {
	e, err := EnvFrom(map[string]string{
		"LOG_LEVEL":  "warn",
		"LOG_FILTER": "app:*",
		"LOG_PRETTY": "true",
		"APP_ENV":    "production",
	})
	require.NoError(t, err)
	assert.Equal(t, Env{Level: "warn", Filter: "app:*", Pretty: "true", AppEnv: Production}, e)
	assert.True(t, e.Production())

	e, err = EnvFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "development", e.AppEnv)
	assert.False(t, e.Production())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FILTER=from_file\n"), 0o600))
	t.Setenv("LOG_FILTER", "")
	require.NoError(t, os.Unsetenv("LOG_FILTER"))

	e, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from_file", e.Filter)
	require.NoError(t, os.Unsetenv("LOG_FILTER"))
}

func TestLoadEnvProcessWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=trace\n"), 0o600))
	t.Setenv("LOG_LEVEL", "error")

	e, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "error", e.Level)
}

func TestLoadEnvMissingFile(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
