// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatePrefersEnvOverride(t *testing.T) {
	t.Setenv(EnvOverride, "/custom/path/config.yml")
	path, err := Locate()
	require.NoError(t, err)
	assert.Equal(t, "/custom/path/config.yml", path)
}

func TestLocateFindsXDGConfigHome(t *testing.T) {
	t.Setenv(EnvOverride, "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, configDirName)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	wantPath := filepath.Join(configDir, configFileName)
	require.NoError(t, os.WriteFile(wantPath, []byte("version: 1\n"), 0o644))

	path, err := Locate()
	require.NoError(t, err)
	assert.Equal(t, wantPath, path)
}

func TestLocateReturnsNotFoundWhenNothingExists(t *testing.T) {
	t.Setenv(EnvOverride, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := Locate()
	require.ErrorIs(t, err, ErrConfigNotFound)
}
