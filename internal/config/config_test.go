package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allowable_crown: 0.002\nformat: dxf\ndebounce: 1s\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.002, cfg.Crown)
	assert.Equal(t, FormatDXF, cfg.Format)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.True(t, cfg.Parallel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"crown.yaml":  "allowable_crown: -1\n",
		"format.yaml": "format: obj\n",
		"level.yaml":  "log_level: loud\n",
		"yaml.yaml":   "tolerance: [1, 2\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		cfg, err := Load(path)
		assert.Error(t, err, name)
		assert.Equal(t, Default(), cfg, name)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Tolerance = 1e-4
	want.LogLevel = "debug"
	want.Parallel = false

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
