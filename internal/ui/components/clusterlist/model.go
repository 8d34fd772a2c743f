// Package clusterlist renders clusters as a virtualized list of
// variable-height rows that expand inline to show their details.
//
// The list never changes the selection itself. Clicks and key presses turn
// into ToggleRequestMsg values; handling one applies the updater through the
// Provider, lays the list out again and then notifies selection listeners,
// in that order.
package clusterlist

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/clusterlog/internal/avatar"
	"github.com/yourusername/clusterlog/internal/cluster"
	"github.com/yourusername/clusterlog/internal/config"
	"github.com/yourusername/clusterlog/internal/ui/components/graph"
	"github.com/yourusername/clusterlog/internal/ui/keys"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// wheelStep is the number of lines one mouse wheel notch scrolls.
const wheelStep = 3

// Provider supplies the ordered clusters and owns the selection.
type Provider interface {
	Clusters() []cluster.Cluster
	Selection() cluster.Set
	SetSelection(update cluster.Updater)
}

// AuthorImages supplies the current author image snapshot.
type AuthorImages interface {
	AuthorImageMap() avatar.Map
}

// ToggleRequestMsg asks the list to apply Update to the selection. It is
// emitted when the summary of cluster ClusterID is activated.
type ToggleRequestMsg struct {
	ClusterID int
	Update    cluster.Updater
}

type Options struct {
	ClusterHeight    int
	NodeGap          int
	DetailHeight     int
	DefaultRowHeight int
	Overscan         int
	Policy           cluster.Policy

	ScrollFPS       int
	ScrollFrequency float64
	ScrollDamping   float64

	KeyMap keys.KeyMap
	Logger *slog.Logger
}

func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		ClusterHeight:    cfg.List.ClusterHeight,
		NodeGap:          cfg.List.NodeGap,
		DetailHeight:     cfg.List.DetailHeight,
		DefaultRowHeight: cfg.List.DefaultRowHeight,
		Overscan:         cfg.List.Overscan,
		Policy:           cfg.Policy(),
		ScrollFPS:        cfg.Scroll.FPS,
		ScrollFrequency:  cfg.Scroll.Frequency,
		ScrollDamping:    cfg.Scroll.Damping,
		KeyMap:           keys.FromConfig(cfg.Keybindings),
		Logger:           logger,
	}
}

type Model struct {
	provider Provider
	images   AuthorImages
	styles   *styles.Styles
	engine   *Engine
	rows     RowRenderer
	scroll   *ScrollSync
	keyMap   keys.KeyMap
	policy   cluster.Policy
	logger   *slog.Logger

	listeners []SelectionListener

	// Snapshots taken from the provider; rows render from these only.
	clusters  []cluster.Cluster
	selection cluster.Set
	imageMap  avatar.Map

	width   int
	height  int
	originX int
	originY int
	top     int
	cursor  int
}

func New(provider Provider, images AuthorImages, details DetailRenderer, st *styles.Styles, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Model{
		provider: provider,
		images:   images,
		styles:   st,
		rows:     NewRowRenderer(st, details, opts.ClusterHeight, opts.NodeGap, opts.DetailHeight),
		scroll:   NewScrollSync(opts.ScrollFPS, opts.ScrollFrequency, opts.ScrollDamping),
		keyMap:   opts.KeyMap,
		policy:   opts.Policy,
		logger:   logger,
	}
	m.engine = NewEngine(
		WithOverscan(opts.Overscan),
		WithRowHeight(opts.DefaultRowHeight),
		WithLogger(logger),
	)
	m.AddSelectionListener(m.scroll)
	m.Refresh()
	return m
}

// AddSelectionListener registers l to be told about every selection change.
func (m *Model) AddSelectionListener(l SelectionListener) {
	m.listeners = append(m.listeners, l)
}

// Refresh re-reads clusters and selection from the provider and drops all
// layout. The cursor stays on the same cluster when it is still present.
func (m *Model) Refresh() {
	prevID, hadCursor := -1, false
	if c, ok := m.CursorCluster(); ok {
		prevID, hadCursor = c.ID, true
	}

	m.clusters = m.provider.Clusters()
	m.selection = m.provider.Selection()
	if m.images != nil {
		m.imageMap = m.images.AuthorImageMap()
	}
	m.engine.SetRows(len(m.clusters), m.rows.Heights().RowHeight(m.clusters, m.selection), m.renderRow)

	if hadCursor {
		if i := cluster.IndexOf(m.clusters, prevID); i >= 0 {
			m.cursor = i
		}
	}
	m.clampCursor()
	m.setTop(m.top)
}

// RefreshImages picks up a new author image snapshot.
func (m *Model) RefreshImages() {
	if m.images == nil {
		return
	}
	m.imageMap = m.images.AuthorImageMap()
	m.engine.RefreshViews()
}

// RefreshCursorRow re-renders the cursor row, e.g. after its detail scrolled.
func (m *Model) RefreshCursorRow() {
	m.engine.RefreshRows(m.cursor)
}

func (m *Model) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.rows.SetWidth(width)
	m.engine.RefreshViews()
	m.setTop(m.top)
}

// SetOrigin sets the screen cell of the list's top-left corner, used to map
// mouse events into list coordinates.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleRequestMsg:
		return m, m.applySelection(msg.Update)

	case ScrollFrameMsg:
		top, cmd, ok := m.scroll.Step(msg)
		if ok {
			m.setTop(top)
		}
		return m, cmd

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keys.MatchesKey(msg, m.keyMap.Down):
		m.moveCursor(1)
	case keys.MatchesKey(msg, m.keyMap.Up):
		m.moveCursor(-1)
	case keys.MatchesKey(msg, m.keyMap.Top):
		m.moveCursor(-len(m.clusters))
	case keys.MatchesKey(msg, m.keyMap.Bottom):
		m.moveCursor(len(m.clusters))
	case keys.MatchesKey(msg, m.keyMap.PageDown):
		m.page(1)
	case keys.MatchesKey(msg, m.keyMap.PageUp):
		m.page(-1)
	case keys.MatchesKey(msg, m.keyMap.Toggle):
		if c, ok := m.CursorCluster(); ok {
			return m.activateSummary(c.ID)
		}
	case keys.MatchesKey(msg, m.keyMap.Collapse):
		if c, ok := m.CursorCluster(); ok && m.selection.Has(c.ID) {
			id := c.ID
			return requestToggle(id, func(prev cluster.Set) cluster.Set {
				return prev.Without(id)
			})
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll.Cancel()
		m.setTop(m.top - wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scroll.Cancel()
		m.setTop(m.top + wheelStep)
		return nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	x, y := msg.X-m.originX, msg.Y-m.originY
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return nil
	}
	g, ok := m.engine.RowAt(m.top + y)
	if !ok {
		return nil
	}

	prev := m.cursor
	m.cursor = g.Index
	m.engine.RefreshRows(prev, m.cursor)

	c := m.clusters[g.Index]
	reg := m.rows.Regions(m.selection.Has(c.ID))
	local := m.top + y - g.Offset
	if x < graph.Width || local < reg.SummaryTop || local >= reg.SummaryTop+reg.SummaryHeight {
		return nil
	}
	return m.activateSummary(c.ID)
}

// activateSummary is what clicking the summary region of cluster id does.
func (m *Model) activateSummary(id int) tea.Cmd {
	return requestToggle(id, cluster.Toggle(id, m.policy))
}

func requestToggle(id int, update cluster.Updater) tea.Cmd {
	return func() tea.Msg {
		return ToggleRequestMsg{ClusterID: id, Update: update}
	}
}

// applySelection runs update through the provider, relays out the rows whose
// expansion changed and then notifies listeners once with the new layout.
func (m *Model) applySelection(update cluster.Updater) tea.Cmd {
	if update == nil {
		return nil
	}

	prev := m.selection
	m.provider.SetSelection(update)
	next := m.provider.Selection()
	if next.Equal(prev) {
		m.selection = next
		return nil
	}
	m.selection = next

	m.engine.SetHeightFunc(m.rows.Heights().RowHeight(m.clusters, next))
	if i := FirstChanged(m.clusters, prev, next); i >= 0 {
		m.engine.InvalidateFrom(i)
	}
	m.engine.Layout()
	m.setTop(m.top)

	added, removed := cluster.Diff(prev, next)
	m.logger.Debug("selection changed", "added", added, "removed", removed, "selected", next.Len())

	change := SelectionChange{Prev: prev, Next: next, Added: added, Removed: removed}
	cmds := make([]tea.Cmd, 0, len(m.listeners))
	for _, l := range m.listeners {
		cmds = append(cmds, l.SelectionChanged(change, m))
	}
	return tea.Batch(cmds...)
}

func (m *Model) moveCursor(delta int) {
	if len(m.clusters) == 0 {
		return
	}
	prev := m.cursor
	m.cursor += delta
	m.clampCursor()
	if m.cursor != prev {
		m.engine.RefreshRows(prev, m.cursor)
	}
	m.scroll.Cancel()
	m.ensureCursorVisible()
}

// page scrolls half a viewport and keeps the cursor on a row in view.
func (m *Model) page(dir int) {
	if len(m.clusters) == 0 {
		return
	}
	m.scroll.Cancel()
	m.setTop(m.top + dir*max(1, m.height/2))

	g, ok := m.engine.Geometry(m.cursor)
	if ok && g.End() > m.top && g.Offset < m.top+m.height {
		return
	}
	y := m.top
	if dir < 0 {
		y = m.top + m.height - 1
	}
	if row, ok := m.engine.RowAt(y); ok {
		prev := m.cursor
		m.cursor = row.Index
		m.engine.RefreshRows(prev, m.cursor)
	}
}

func (m *Model) ensureCursorVisible() {
	g, ok := m.engine.Geometry(m.cursor)
	if !ok {
		return
	}
	switch {
	case g.Offset < m.top:
		m.setTop(g.Offset)
	case g.End() > m.top+m.height:
		if g.Height > m.height {
			m.setTop(g.Offset)
		} else {
			m.setTop(g.End() - m.height)
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.clusters) {
		m.cursor = len(m.clusters) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setTop(top int) {
	maxTop := m.engine.TotalHeight() - m.height
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	m.top = top
}

func (m *Model) renderRow(index int) string {
	if index < 0 || index >= len(m.clusters) {
		return ""
	}
	return m.rows.Render(index, len(m.clusters), m.clusters[index], m.selection, m.imageMap, index == m.cursor).View
}

func (m *Model) View() string {
	box := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Background(m.styles.Theme.Background)

	if len(m.clusters) == 0 {
		return box.
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.styles.Subtle.Render("No clusters"))
	}
	return box.Render(m.engine.Render(m.top, m.height))
}

// Metrics reports the current viewport against the laid out list.
func (m *Model) Metrics() Metrics {
	return m.engine.Metrics(m.top, m.height)
}

// DetailRegion returns where the detail region of cluster id sits in list
// coordinates. ok is false when the cluster is absent or collapsed.
func (m *Model) DetailRegion(id int) (top, height int, ok bool) {
	i := cluster.IndexOf(m.clusters, id)
	if i < 0 || !m.selection.Has(id) {
		return 0, 0, false
	}
	g, ok := m.engine.Geometry(i)
	if !ok {
		return 0, 0, false
	}
	reg := m.rows.Regions(true)
	return g.Offset + reg.DetailTop, reg.DetailHeight, true
}

// CursorCluster returns the cluster under the keyboard cursor.
func (m *Model) CursorCluster() (cluster.Cluster, bool) {
	if m.cursor < 0 || m.cursor >= len(m.clusters) {
		return cluster.Cluster{}, false
	}
	return m.clusters[m.cursor], true
}

func (m *Model) Selection() cluster.Set {
	return m.selection
}

func (m *Model) Top() int {
	return m.top
}

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Len() int {
	return len(m.clusters)
}

// Animating reports whether a scroll animation is in flight.
func (m *Model) Animating() bool {
	return m.scroll.Animating()
}
