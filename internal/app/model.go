package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/clusterlog/internal/avatar"
	"github.com/yourusername/clusterlog/internal/cluster"
	"github.com/yourusername/clusterlog/internal/config"
	"github.com/yourusername/clusterlog/internal/git"
	"github.com/yourusername/clusterlog/internal/ui/components/actionbar"
	"github.com/yourusername/clusterlog/internal/ui/components/clusterlist"
	"github.com/yourusername/clusterlog/internal/ui/components/details"
	"github.com/yourusername/clusterlog/internal/ui/components/modals"
	"github.com/yourusername/clusterlog/internal/ui/keys"
	"github.com/yourusername/clusterlog/internal/ui/layout"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// messageTimeout is how long action bar messages stay up.
const messageTimeout = 3 * time.Second

type Model struct {
	config *config.Config
	repo   *git.Repository
	logger *slog.Logger
	styles *styles.Styles
	layout *layout.Layout
	keyMap keys.KeyMap

	store   *cluster.Store
	avatars *avatar.Preloader
	details details.Model
	list    *clusterlist.Model

	actionBar   actionbar.Model
	filterModal modals.FilterModal
	helpModal   modals.HelpModal
	branchModal modals.BranchModal

	// branch is the scope clusters are built from; empty means all refs.
	branch string

	width  int
	height int
	ready  bool
}

func New(cfg *config.Config, repoPath string, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	repo, err := git.OpenRepository(repoPath)
	if err != nil {
		return nil, err
	}

	repo.SetFileStats(cfg.Performance.FileStats)

	st := styles.NewStyles(styles.GetTheme(cfg.UI.Theme))
	km := keys.FromConfig(cfg.Keybindings)
	store := cluster.NewStore(nil)
	preloader := avatar.NewPreloader(
		avatar.WithDir(cfg.Avatars.Dir),
		avatar.WithGravatar(cfg.Avatars.Gravatar),
		avatar.WithLogger(logger.With("component", "avatar")),
	)
	det := details.New(st)
	list := clusterlist.New(store, preloader, det, st,
		clusterlist.OptionsFromConfig(cfg, logger.With("component", "clusterlist")))

	m := &Model{
		config:      cfg,
		repo:        repo,
		logger:      logger,
		styles:      st,
		keyMap:      km,
		store:       store,
		avatars:     preloader,
		details:     det,
		list:        list,
		actionBar:   actionbar.New(st, 0),
		filterModal: modals.NewFilterModal(st),
		helpModal:   modals.NewHelpModal(st, km),
		branchModal: modals.NewBranchModal(st),
		branch:      cfg.Clusters.Branch,
	}
	m.actionBar.SetScope(m.branch)
	return m, nil
}

// ReloadMsg asks the app to rebuild clusters from the repository, e.g. after
// the watcher saw refs change.
type ReloadMsg struct{}

// WatchErrorMsg reports a failure of the repository watcher.
type WatchErrorMsg struct {
	Err error
}

type clustersLoadedMsg struct {
	clusters []cluster.Cluster
	commits  int
	err      error
}

type avatarsLoadedMsg struct {
	added int
	err   error
}

// operationResultMsg is sent when a background operation completes.
type operationResultMsg struct {
	operation string
	done      string
	reload    bool
	err       error
}

// clearMessageMsg is sent after a delay to clear the action bar message.
type clearMessageMsg struct{}

// branchesLoadedMsg is sent when the branch list has been loaded for the picker.
type branchesLoadedMsg struct {
	branches []*git.Branch
}

func (m Model) Init() tea.Cmd {
	return m.loadClustersCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.MouseMsg:
		if !m.ready || m.filterModal.IsVisible() || m.branchModal.IsVisible() || m.helpModal.IsVisible() {
			return m, nil
		}
		return m.forwardToList(msg)

	case tea.KeyMsg:
		if m.filterModal.IsVisible() {
			return m.handleFilterModal(msg)
		}
		if m.branchModal.IsVisible() {
			return m.handleBranchModal(msg)
		}
		if m.helpModal.IsVisible() {
			if keys.MatchesKey(msg, m.keyMap.Help) || msg.String() == "esc" {
				m.helpModal.Toggle()
				m.recalcListSize()
			}
			return m, nil
		}
		return m.handleKey(msg)

	case ReloadMsg:
		m.logger.Debug("reload requested")
		return m, m.loadClustersCmd()

	case WatchErrorMsg:
		m.logger.Warn("watcher error", "err", msg.Err)
		cmd := m.flash("Watch error: " + msg.Err.Error())
		return m, cmd

	case clustersLoadedMsg:
		return m.handleClustersLoaded(msg)

	case avatarsLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("avatar preload failed", "err", msg.err)
		}
		if msg.added > 0 {
			m.list.RefreshImages()
		}
		return m, nil

	case operationResultMsg:
		return m.handleOperationResult(msg)

	case clearMessageMsg:
		m.actionBar.ClearMessage()
		return m, nil

	case branchesLoadedMsg:
		m.branchModal.Show(msg.branches, m.branch)
		m.recalcListSize()
		return m, nil
	}

	return m.forwardToList(msg)
}

// forwardToList hands msg to the cluster list, which owns toggle requests and
// scroll frames, then refreshes the counts the action bar shows.
func (m Model) forwardToList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.updateCounts()
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var extraPanel string
	switch {
	case m.filterModal.IsVisible():
		extraPanel = m.filterModal.View()
	case m.branchModal.IsVisible():
		extraPanel = m.branchModal.View()
	case m.helpModal.IsVisible():
		extraPanel = m.helpModal.View()
	}

	return m.layout.RenderWithExtra(m.list.View(), extraPanel, m.actionBar.View())
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	if m.layout == nil {
		m.layout = layout.New(m.width, m.height, " Clusters ",
			m.styles.Theme.Background, m.styles.Theme.Border, m.styles.Theme.Foreground)
	} else {
		m.layout.SetSize(m.width, m.height)
	}
	m.actionBar.SetWidth(m.width)
	m.filterModal.SetSize(m.width, m.height)
	m.branchModal.SetSize(m.width, m.height)
	m.recalcListSize()

	m.ready = true
	return m, nil
}

// recalcListSize resizes the list for the inline panels currently shown.
func (m *Model) recalcListSize() {
	if m.layout == nil {
		return
	}
	extra := m.filterModal.Height() + m.helpModal.Height() + m.branchModal.Height()

	// Help is the largest panel; drop it rather than squeeze the list.
	if _, h := m.layout.CalculateWithExtra(extra); h <= 3 && m.helpModal.IsVisible() {
		m.helpModal.Toggle()
		extra = m.filterModal.Height() + m.branchModal.Height()
	}

	w, h := m.layout.CalculateWithExtra(extra)
	m.list.SetSize(w, h)
	m.list.SetOrigin(m.layout.ContentOrigin())
}

func (m *Model) updateCounts() {
	m.actionBar.SetCounts(len(m.store.Clusters()), len(m.store.All()), m.store.Selection().Len())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keys.MatchesKey(msg, m.keyMap.Quit):
		return m, tea.Quit

	case keys.MatchesKey(msg, m.keyMap.Help):
		m.helpModal.Toggle()
		m.recalcListSize()
		return m, nil

	case keys.MatchesKey(msg, m.keyMap.Filter):
		cmd := m.filterModal.Show(m.store.Filter())
		m.recalcListSize()
		return m, cmd

	case keys.MatchesKey(msg, m.keyMap.Branch):
		return m, m.loadBranchesCmd()

	case keys.MatchesKey(msg, m.keyMap.Fetch):
		m.actionBar.SetMessage("Fetching...")
		return m, m.fetchCmd()

	case keys.MatchesKey(msg, m.keyMap.CopyHashes):
		return m.handleCopyHashes()

	case keys.MatchesKey(msg, m.keyMap.CopySummary):
		return m.handleCopySummary()

	case keys.MatchesKey(msg, m.keyMap.CopyDiff):
		return m.handleCopyDiff()

	case keys.MatchesKey(msg, m.keyMap.DetailDown):
		m.scrollDetail(1)
		return m, nil

	case keys.MatchesKey(msg, m.keyMap.DetailUp):
		m.scrollDetail(-1)
		return m, nil
	}

	// Navigation, toggle and collapse belong to the list.
	return m.forwardToList(msg)
}

// scrollDetail scrolls the detail region of the cursor cluster if it is open.
func (m *Model) scrollDetail(delta int) {
	c, ok := m.list.CursorCluster()
	if !ok || !m.list.Selection().Has(c.ID) {
		return
	}
	m.details.ScrollBy(c.ID, delta)
	m.list.RefreshCursorRow()
}

func (m Model) handleFilterModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterModal.Hide()
		m.applyFilter("")
		m.recalcListSize()
		return m, nil
	case "enter":
		m.filterModal.Hide()
		m.recalcListSize()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterModal, cmd = m.filterModal.Update(msg)
	if v := m.filterModal.Value(); v != m.store.Filter() {
		m.applyFilter(v)
	}
	return m, cmd
}

func (m *Model) applyFilter(query string) {
	m.store.SetFilter(query)
	m.list.Refresh()
	m.actionBar.SetFilter(query)
	m.updateCounts()
}

func (m Model) handleBranchModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" || keys.MatchesKey(msg, m.keyMap.Branch):
		m.branchModal.Hide()
		m.recalcListSize()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.Down):
		m.branchModal.MoveDown()
		return m, nil
	case keys.MatchesKey(msg, m.keyMap.Up):
		m.branchModal.MoveUp()
		return m, nil
	case msg.String() == "enter":
		scope, ok := m.branchModal.Selected()
		m.branchModal.Hide()
		m.recalcListSize()
		if !ok || scope.Branch == m.branch {
			return m, nil
		}
		m.branch = scope.Branch
		m.actionBar.SetScope(m.branch)
		flash := m.flash("Clustering " + scope.Label() + "...")
		return m, tea.Batch(flash, m.loadClustersCmd())
	}
	return m, nil
}

func (m Model) handleCopyHashes() (tea.Model, tea.Cmd) {
	c, ok := m.list.CursorCluster()
	if !ok {
		return m, nil
	}
	hashes := make([]string, len(c.Commits))
	for i, commit := range c.Commits {
		hashes[i] = commit.Hash
	}
	return m.copy(strings.Join(hashes, "\n"), fmt.Sprintf("Copied %d hashes", len(hashes)))
}

func (m Model) handleCopySummary() (tea.Model, tea.Cmd) {
	c, ok := m.list.CursorCluster()
	if !ok {
		return m, nil
	}
	return m.copy(c.Summary.Content, "Copied summary")
}

func (m Model) handleCopyDiff() (tea.Model, tea.Cmd) {
	c, ok := m.list.CursorCluster()
	if !ok || len(c.Commits) == 0 {
		return m, nil
	}
	m.actionBar.SetMessage("Building diff...")
	return m, m.copyDiffCmd(c.Commits[len(c.Commits)-1].Hash, c.Commits[0].Hash)
}

func (m Model) copy(text, done string) (tea.Model, tea.Cmd) {
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		done = "Copy failed: " + err.Error()
	}
	cmd := m.flash(done)
	return m, cmd
}

func (m Model) handleClustersLoaded(msg clustersLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("load clusters", "branch", m.branch, "err", msg.err)
		cmd := m.flash("Failed to load clusters: " + msg.err.Error())
		return m, cmd
	}

	m.logger.Info("clusters loaded", "branch", m.branch, "commits", msg.commits, "clusters", len(msg.clusters))
	m.store.SetClusters(msg.clusters)
	m.list.Refresh()
	m.updateCounts()

	authors := cluster.Authors(msg.clusters)
	if len(authors) == 0 {
		return m, nil
	}
	return m, m.preloadAvatarsCmd(authors)
}

func (m Model) handleOperationResult(msg operationResultMsg) (tea.Model, tea.Cmd) {
	text := msg.done
	if msg.err != nil {
		m.logger.Error(msg.operation+" failed", "err", msg.err)
		text = fmt.Sprintf("%s failed: %s", msg.operation, msg.err.Error())
	}
	cmds := []tea.Cmd{m.flash(text)}
	if msg.reload && msg.err == nil {
		cmds = append(cmds, m.loadClustersCmd())
	}
	return m, tea.Batch(cmds...)
}

// flash shows text in the action bar until messageTimeout passes.
func (m *Model) flash(text string) tea.Cmd {
	m.actionBar.SetMessage(text)
	return m.clearMessageAfter(messageTimeout)
}

func (m Model) clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}

func (m Model) loadClustersCmd() tea.Cmd {
	repo, branch := m.repo, m.branch
	maxCommits, maxSize := m.config.Performance.MaxCommits, m.config.Clusters.MaxSize
	return func() tea.Msg {
		commits, err := repo.GetCommits(maxCommits, branch)
		if err != nil {
			return clustersLoadedMsg{err: err}
		}
		return clustersLoadedMsg{
			clusters: cluster.Build(commits, maxSize),
			commits:  len(commits),
		}
	}
}

func (m Model) preloadAvatarsCmd(people []cluster.Person) tea.Cmd {
	authors := make([]avatar.Author, len(people))
	for i, p := range people {
		authors[i] = avatar.Author{Name: p.Name, Email: p.Email}
	}
	preloader := m.avatars
	return func() tea.Msg {
		added, err := preloader.Preload(context.Background(), authors)
		return avatarsLoadedMsg{added: added, err: err}
	}
}

func (m Model) loadBranchesCmd() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		branches, err := repo.GetBranches()
		if err != nil {
			return operationResultMsg{operation: "branch list", err: err}
		}
		return branchesLoadedMsg{branches: branches}
	}
}

func (m Model) fetchCmd() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		err := repo.Fetch()
		return operationResultMsg{operation: "fetch", done: "Fetch completed", reload: true, err: err}
	}
}

func (m Model) copyDiffCmd(oldest, newest string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		diff, err := repo.GetRangeDiff(oldest, newest)
		if err == nil {
			err = clipboard.WriteAll(diff)
		}
		return operationResultMsg{operation: "copy diff", done: "Copied diff", err: err}
	}
}

// RepoPath returns the worktree root of the repository being viewed.
func (m Model) RepoPath() string {
	return m.repo.Path()
}
