package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourusername/clusterlog/internal/app"
	"github.com/yourusername/clusterlog/internal/config"
	"github.com/yourusername/clusterlog/internal/git"
	"github.com/yourusername/clusterlog/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var (
		cfgFile string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "clusterlog [path]",
		Short: "Browse git history as expandable commit clusters",
		Long: `clusterlog groups the history of a git repository into clusters of
consecutive commits and shows them as a scrollable list. Each cluster
expands in place to list its commits.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			if noWatch {
				cfg.Watch.Enabled = false
			}
			return run(cfg, path)
		},
	}

	def := config.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/clusterlog/config.yaml)")
	flags.String("policy", def.Clusters.SelectionPolicy, "selection policy: multi or single")
	flags.Int("max-commits", def.Performance.MaxCommits, "maximum number of commits to load")
	flags.String("branch", def.Clusters.Branch, "cluster only this branch (default all refs)")
	flags.String("log-file", def.Log.File, "write JSON logs to this file")
	flags.String("log-level", def.Log.Level, "log level: DEBUG, INFO, WARN or ERROR")
	flags.BoolVar(&noWatch, "no-watch", false, "do not reload when refs change")

	_ = v.BindPFlag("clusters.selection_policy", flags.Lookup("policy"))
	_ = v.BindPFlag("performance.max_commits", flags.Lookup("max-commits"))
	_ = v.BindPFlag("clusters.branch", flags.Lookup("branch"))
	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	return cmd
}

func run(cfg *config.Config, path string) error {
	logger, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	model, err := app.New(cfg, path, logger)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	logger.Info("starting", "repo", model.RepoPath(), "policy", cfg.Policy().String())

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(*model, opts...)

	if cfg.Watch.Enabled {
		w, err := git.NewWatcher(model.RepoPath(),
			git.WithDebounce(cfg.Watch.Debounce),
			git.WithOnChange(func() { p.Send(app.ReloadMsg{}) }),
			git.WithOnError(func(err error) { p.Send(app.WatchErrorMsg{Err: err}) }),
		)
		if err != nil {
			logger.Warn("watcher unavailable", "err", err)
		} else if err := w.Start(); err != nil {
			logger.Warn("watcher start failed", "err", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
