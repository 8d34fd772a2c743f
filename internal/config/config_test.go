package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clusterlog/internal/cluster"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, cluster.PolicyMulti, cfg.Policy())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
clusters:
  selection_policy: single
  max_size: 4
list:
  detail_height: 6
watch:
  debounce: 1s
keybindings:
  toggle: ["o"]
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, cluster.PolicySingle, cfg.Policy())
	assert.Equal(t, 4, cfg.Clusters.MaxSize)
	assert.Equal(t, 6, cfg.List.DetailHeight)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, []string{"o"}, cfg.Keybindings.Toggle)

	// Untouched sections keep their defaults.
	assert.Equal(t, 15, cfg.List.Overscan)
	assert.Equal(t, []string{"esc"}, cfg.Keybindings.Collapse)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLUSTERLOG_LIST_DETAIL_HEIGHT", "7")
	t.Setenv("CLUSTERLOG_CLUSTERS_SELECTION_POLICY", "single")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.List.DetailHeight)
	assert.Equal(t, cluster.PolicySingle, cfg.Policy())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
clusters:
  selection_policy: accordion
list:
  cluster_height: 0
  overscan: -1
`)

	_, err := Load(viper.New(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, cluster.ErrUnknownPolicy)
	assert.Contains(t, err.Error(), "list.cluster_height")
	assert.Contains(t, err.Error(), "list.overscan")
}

func TestLoadUnreadableFile(t *testing.T) {
	path := writeConfig(t, "list: [unterminated")
	_, err := Load(viper.New(), path)
	assert.Error(t, err)
}

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
