package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "config.yaml"),
		[]byte("API_PORT: 7070\n"), 0o644))
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, ReadConfig())
	assert.Equal(t, 7070, viper.GetInt("API_PORT"))
}

func TestReadConfigMissingFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	err = ReadConfig()
	require.Error(t, err)
	assert.Equal(t, ErrInternalServerError, GetCode(err))
}
