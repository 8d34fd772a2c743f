package config

import "time"

type Config struct {
	UI          UIConfig          `mapstructure:"ui" yaml:"ui"`
	Layout      LayoutConfig      `mapstructure:"layout" yaml:"layout"`
	Clusters    ClustersConfig    `mapstructure:"clusters" yaml:"clusters"`
	List        ListConfig        `mapstructure:"list" yaml:"list"`
	Scroll      ScrollConfig      `mapstructure:"scroll" yaml:"scroll"`
	Keybindings KeybindingsConfig `mapstructure:"keybindings" yaml:"keybindings"`
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance"`
	Watch       WatchConfig       `mapstructure:"watch" yaml:"watch"`
	Avatars     AvatarsConfig     `mapstructure:"avatars" yaml:"avatars"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
	Mouse bool   `mapstructure:"mouse" yaml:"mouse"`
}

type LayoutConfig struct {
	MinWidth int `mapstructure:"min_width" yaml:"min_width"`
}

type ClustersConfig struct {
	// MaxSize is the most commits folded into one cluster.
	MaxSize int `mapstructure:"max_size" yaml:"max_size"`
	// SelectionPolicy is "multi" or "single".
	SelectionPolicy string `mapstructure:"selection_policy" yaml:"selection_policy"`
	// Branch limits clustering to one local branch; empty means all refs.
	Branch string `mapstructure:"branch" yaml:"branch"`
}

// ListConfig sizes cluster rows, in terminal lines.
type ListConfig struct {
	ClusterHeight    int `mapstructure:"cluster_height" yaml:"cluster_height"`
	NodeGap          int `mapstructure:"node_gap" yaml:"node_gap"`
	DetailHeight     int `mapstructure:"detail_height" yaml:"detail_height"`
	DefaultRowHeight int `mapstructure:"default_row_height" yaml:"default_row_height"`
	Overscan         int `mapstructure:"overscan" yaml:"overscan"`
}

// ScrollConfig tunes the spring used when bringing an expanded row into view.
type ScrollConfig struct {
	FPS       int     `mapstructure:"fps" yaml:"fps"`
	Frequency float64 `mapstructure:"frequency" yaml:"frequency"`
	Damping   float64 `mapstructure:"damping" yaml:"damping"`
}

type KeybindingsConfig struct {
	Quit        []string `mapstructure:"quit" yaml:"quit"`
	Help        []string `mapstructure:"help" yaml:"help"`
	Filter      []string `mapstructure:"filter" yaml:"filter"`
	Branch      []string `mapstructure:"branch" yaml:"branch"`
	Fetch       []string `mapstructure:"fetch" yaml:"fetch"`
	Toggle      []string `mapstructure:"toggle" yaml:"toggle"`
	Collapse    []string `mapstructure:"collapse" yaml:"collapse"`
	Up          []string `mapstructure:"up" yaml:"up"`
	Down        []string `mapstructure:"down" yaml:"down"`
	Top         []string `mapstructure:"top" yaml:"top"`
	Bottom      []string `mapstructure:"bottom" yaml:"bottom"`
	PageUp      []string `mapstructure:"page_up" yaml:"page_up"`
	PageDown    []string `mapstructure:"page_down" yaml:"page_down"`
	DetailUp    []string `mapstructure:"detail_up" yaml:"detail_up"`
	DetailDown  []string `mapstructure:"detail_down" yaml:"detail_down"`
	CopyHashes  []string `mapstructure:"copy_hashes" yaml:"copy_hashes"`
	CopySummary []string `mapstructure:"copy_summary" yaml:"copy_summary"`
	CopyDiff    []string `mapstructure:"copy_diff" yaml:"copy_diff"`
}

type PerformanceConfig struct {
	MaxCommits int `mapstructure:"max_commits" yaml:"max_commits"`
	// FileStats diffs every loaded commit against its parent for the detail panel.
	FileStats bool `mapstructure:"file_stats" yaml:"file_stats"`
}

type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

type AvatarsConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Gravatar bool   `mapstructure:"gravatar" yaml:"gravatar"`
}

type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}
