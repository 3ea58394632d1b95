package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 250.0, cfg.ShankSeparationUM)
	assert.Equal(t, -1, cfg.SyncChannel)
	assert.False(t, cfg.StrictGeometry)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{
		ShankSeparationUM: 300,
		SyncChannel:       384,
		StrictGeometry:    true,
		Output:            Output{Format: "json"},
		Logging:           Logging{Level: "debug"},
	}

	require.NoError(t, Save(want, configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output:\n  format: yaml\n"), 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 250.0, cfg.ShankSeparationUM)
	assert.Equal(t, -1, cfg.SyncChannel)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid yaml", "output: [", "failed to parse"},
		{"unknown format", "output:\n  format: xml\n", "output.format"},
		{"unknown level", "logging:\n  level: loud\n", "logging.level"},
		{"negative separation", "shank_separation_um: -5\n", "shank_separation_um"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_YAMLKeys(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "shank_separation_um")
	assert.Contains(t, raw, "sync_channel")
	assert.Contains(t, raw, "output")
	assert.Contains(t, raw, "logging")
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.False(t, Exists(path))
	require.NoError(t, Save(Default(), path))
	assert.True(t, Exists(path))
}

func TestDefaultPath(t *testing.T) {
	assert.Contains(t, []string{"config.yaml", "spikeglx.yaml"}, filepath.Base(DefaultPath()))
}
