package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/yourusername/clusterlog/internal/cluster"
)

// EnvPrefix prefixes environment overrides, e.g. CLUSTERLOG_LIST_DETAIL_HEIGHT.
const EnvPrefix = "CLUSTERLOG"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme: "catppuccin-mocha",
			Mouse: true,
		},
		Layout: LayoutConfig{
			MinWidth: 80,
		},
		Clusters: ClustersConfig{
			MaxSize:         cluster.DefaultMaxSize,
			SelectionPolicy: cluster.PolicyMulti.String(),
		},
		List: ListConfig{
			ClusterHeight:    2,
			NodeGap:          1,
			DetailHeight:     10,
			DefaultRowHeight: 4,
			Overscan:         15,
		},
		Scroll: ScrollConfig{
			FPS:       60,
			Frequency: 6.0,
			Damping:   1.0,
		},
		Keybindings: KeybindingsConfig{
			Quit:        []string{"q", "ctrl+c"},
			Help:        []string{"?"},
			Filter:      []string{"/"},
			Branch:      []string{"b"},
			Fetch:       []string{"f"},
			Toggle:      []string{"enter", " "},
			Collapse:    []string{"esc"},
			Up:          []string{"k", "up"},
			Down:        []string{"j", "down"},
			Top:         []string{"g", "home"},
			Bottom:      []string{"G", "end"},
			PageUp:      []string{"ctrl+u", "pgup"},
			PageDown:    []string{"ctrl+d", "pgdown"},
			DetailUp:    []string{"["},
			DetailDown:  []string{"]"},
			CopyHashes:  []string{"y"},
			CopySummary: []string{"Y"},
			CopyDiff:    []string{"ctrl+y"},
		},
		Performance: PerformanceConfig{
			MaxCommits: 1000,
			FileStats:  true,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
		},
		Avatars: AvatarsConfig{
			Gravatar: true,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// SetDefaults registers default values with v so that environment
// overrides reach keys no config file mentions.
func SetDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	// UI and layout
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.mouse", defaults.UI.Mouse)
	v.SetDefault("layout.min_width", defaults.Layout.MinWidth)

	// Clusters
	v.SetDefault("clusters.max_size", defaults.Clusters.MaxSize)
	v.SetDefault("clusters.selection_policy", defaults.Clusters.SelectionPolicy)
	v.SetDefault("clusters.branch", defaults.Clusters.Branch)

	// List geometry
	v.SetDefault("list.cluster_height", defaults.List.ClusterHeight)
	v.SetDefault("list.node_gap", defaults.List.NodeGap)
	v.SetDefault("list.detail_height", defaults.List.DetailHeight)
	v.SetDefault("list.default_row_height", defaults.List.DefaultRowHeight)
	v.SetDefault("list.overscan", defaults.List.Overscan)

	// Scroll animation
	v.SetDefault("scroll.fps", defaults.Scroll.FPS)
	v.SetDefault("scroll.frequency", defaults.Scroll.Frequency)
	v.SetDefault("scroll.damping", defaults.Scroll.Damping)

	v.SetDefault("performance.max_commits", defaults.Performance.MaxCommits)
	v.SetDefault("performance.file_stats", defaults.Performance.FileStats)
	v.SetDefault("watch.enabled", defaults.Watch.Enabled)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("avatars.dir", defaults.Avatars.Dir)
	v.SetDefault("avatars.gravatar", defaults.Avatars.Gravatar)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)
}

// Dir is the directory searched for config.yaml when no file is given.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "clusterlog")
}

// Load reads configuration into DefaultConfig. v may carry bound command-line
// flags; path overrides the default config location. A missing config file is
// not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	config := DefaultConfig()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the list cannot lay out with.
func (c *Config) Validate() error {
	var errs []error
	if c.List.ClusterHeight < 1 {
		errs = append(errs, fmt.Errorf("list.cluster_height must be at least 1, got %d", c.List.ClusterHeight))
	}
	if c.List.NodeGap < 0 {
		errs = append(errs, fmt.Errorf("list.node_gap must not be negative, got %d", c.List.NodeGap))
	}
	if c.List.DetailHeight < 1 {
		errs = append(errs, fmt.Errorf("list.detail_height must be at least 1, got %d", c.List.DetailHeight))
	}
	if c.List.DefaultRowHeight < 1 {
		errs = append(errs, fmt.Errorf("list.default_row_height must be at least 1, got %d", c.List.DefaultRowHeight))
	}
	if c.List.Overscan < 0 {
		errs = append(errs, fmt.Errorf("list.overscan must not be negative, got %d", c.List.Overscan))
	}
	if c.Scroll.FPS < 1 {
		errs = append(errs, fmt.Errorf("scroll.fps must be at least 1, got %d", c.Scroll.FPS))
	}
	if c.Clusters.MaxSize < 1 {
		errs = append(errs, fmt.Errorf("clusters.max_size must be at least 1, got %d", c.Clusters.MaxSize))
	}
	if c.Performance.MaxCommits < 1 {
		errs = append(errs, fmt.Errorf("performance.max_commits must be at least 1, got %d", c.Performance.MaxCommits))
	}
	if _, err := cluster.ParsePolicy(c.Clusters.SelectionPolicy); err != nil {
		errs = append(errs, fmt.Errorf("clusters.selection_policy: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Policy returns the parsed selection policy. Call after Validate.
func (c *Config) Policy() cluster.Policy {
	p, _ := cluster.ParsePolicy(c.Clusters.SelectionPolicy)
	return p
}
