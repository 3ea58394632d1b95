package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spikeglx/internal/config"
)

// useDefaultConfig writes cfg to the default config path for the duration
// of the test.
func useDefaultConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	path := config.DefaultPath()
	require.NoError(t, config.Save(cfg, path))
	t.Cleanup(func() { os.Remove(path) })
}

func TestDefaultConfigFileIsLoaded(t *testing.T) {
	dir := t.TempDir()
	binPath := writeFixture(t, dir, "run.imec0.ap", cliMeta, cliFrames)

	cfg := config.Default()
	cfg.Output.Format = "json"
	cfg.SyncChannel = 0
	useDefaultConfig(t, cfg)

	out, _, code := run(t, "sync", binPath)
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Data SyncResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 0, resp.Data.Channel)

	// --config wins over the default location.
	explicit := filepath.Join(dir, "text.yaml")
	require.NoError(t, config.Save(config.Default(), explicit))
	out, _, code = run(t, "--config", explicit, "sync", binPath)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "channel 4,")
}

func TestDefaultConfigFileInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "loud"
	useDefaultConfig(t, cfg)

	_, stderr, code := run(t, "version")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "load config")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "spikeglx.yaml")

	out, _, code := run(t, "--config", path, "config", "init")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "wrote default config to "+path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, stderr, code := run(t, "--config", path, "config", "init")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "already exists")

	// A broken file can still be replaced.
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))
	_, _, code = run(t, "--config", path, "config", "init", "--force")
	require.Equal(t, ExitSuccess, code)
	_, err = config.Load(path)
	assert.NoError(t, err)
}

func TestConfigInit_DefaultPath(t *testing.T) {
	path := config.DefaultPath()
	t.Cleanup(func() { os.Remove(path) })

	out, _, code := run(t, "--format", "json", "config", "init")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Data ConfigInitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, path, resp.Data.Path)
	assert.True(t, config.Exists(path))
}
