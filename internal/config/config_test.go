package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arx-os/takeoff/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderAppliesDefaultsOnly(t *testing.T) {
	l := config.NewLoader()
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.IDWNeighbors)
	assert.Equal(t, 1.0, cfg.DefaultCellSize)
}

func TestFileSourceOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("idw_neighbors: 12\nrdp_tolerance: 0.25\n"), 0o644))

	l := config.NewLoader()
	l.AddSource(config.NewFileSource(path, 100))
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.IDWNeighbors)
	assert.Equal(t, 0.25, cfg.RDPTolerance)
	assert.Equal(t, 1.0, cfg.DefaultCellSize)
}

func TestEnvSourceOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("idw_neighbors: 12\n"), 0o644))

	t.Setenv("TAKEOFF_IDW_NEIGHBORS", "20")

	l := config.NewLoader()
	l.AddSource(config.NewFileSource(path, 50))
	l.AddSource(config.NewEnvSource("TAKEOFF_", 100))
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.IDWNeighbors)
}

func TestFileSourceMissingFileErrors(t *testing.T) {
	l := config.NewLoader()
	l.AddSource(config.NewFileSource("/does/not/exist.yaml", 100))
	_, err := l.Load()
	require.Error(t, err)
}
