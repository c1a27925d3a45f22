package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jarcho/cargo-ci-precache/internal/adapters/config"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	contents := "temp: /var/ci/trash\ncargoHome: /opt/cargo\ndryRun: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(contents), 0o644))

	settings, err := config.NewLoader().Load(dir)
	require.NoError(t, err)
	require.Equal(t, "/var/ci/trash", settings.Temp)
	require.Equal(t, "/opt/cargo", settings.CargoHome)
	require.True(t, settings.DryRun)
}

func TestLoad_MissingFileIsZeroSettings(t *testing.T) {
	settings, err := config.NewLoader().Load(t.TempDir())
	require.NoError(t, err)
	require.Zero(t, settings)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte("temp: [unclosed"), 0o644))

	_, err := config.NewLoader().Load(dir)
	require.Error(t, err)
}
