package clusterlist

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/yourusername/clusterlog/internal/cluster"
)

// SelectionChange describes one applied selection update.
type SelectionChange struct {
	Prev    cluster.Set
	Next    cluster.Set
	Added   []int
	Removed []int
}

// Layout is the read-only view of the list that selection listeners get
// after the list has been laid out for the new selection.
type Layout interface {
	Metrics() Metrics
	// DetailRegion returns the list line where the detail region of cluster
	// id starts and its height. ok is false when the cluster is not in the
	// list or is not expanded.
	DetailRegion(id int) (top, height int, ok bool)
}

// SelectionListener is notified once per selection change, after relayout.
type SelectionListener interface {
	SelectionChanged(change SelectionChange, layout Layout) tea.Cmd
}

// ScrollFrameMsg advances the scroll animation by one frame.
type ScrollFrameMsg struct {
	gen int
}

// ScrollSync brings a newly expanded detail region to the middle of the
// viewport with a spring animation. A new target replaces the one in flight.
type ScrollSync struct {
	spring harmonica.Spring
	frame  time.Duration

	pos    float64
	vel    float64
	target float64
	gen    int
	active bool
}

func NewScrollSync(fps int, frequency, damping float64) *ScrollSync {
	if fps < 1 {
		fps = 60
	}
	return &ScrollSync{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		frame:  time.Second / time.Duration(fps),
	}
}

// SelectionChanged targets the detail region of the first added cluster that
// is laid out. Collapses, and additions that are not in the list, do nothing.
func (s *ScrollSync) SelectionChanged(change SelectionChange, layout Layout) tea.Cmd {
	for _, id := range change.Added {
		top, height, ok := layout.DetailRegion(id)
		if !ok {
			continue
		}
		m := layout.Metrics()
		return s.animate(m.Top, CenterTop(top, height, m.ViewportHeight, m.TotalHeight))
	}
	return nil
}

// CenterTop returns the viewport top that centers a region, clamped to the
// scrollable range.
func CenterTop(regionTop, regionHeight, viewportHeight, totalHeight int) int {
	top := regionTop + regionHeight/2 - viewportHeight/2
	maxTop := totalHeight - viewportHeight
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

func (s *ScrollSync) animate(from, to int) tea.Cmd {
	s.gen++
	if !s.active {
		s.vel = 0
	}
	s.pos = float64(from)
	s.target = float64(to)
	s.active = true
	return s.tick()
}

func (s *ScrollSync) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.frame, func(time.Time) tea.Msg {
		return ScrollFrameMsg{gen: gen}
	})
}

// Step advances the animation. ok is false for frames of a superseded or
// cancelled animation, which must be ignored.
func (s *ScrollSync) Step(msg ScrollFrameMsg) (top int, cmd tea.Cmd, ok bool) {
	if !s.active || msg.gen != s.gen {
		return 0, nil, false
	}

	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.target-s.pos) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos, s.vel = s.target, 0
		s.active = false
		return int(s.target), nil, true
	}
	return int(math.Round(s.pos)), s.tick(), true
}

// Cancel stops the animation in flight, e.g. when the user scrolls.
func (s *ScrollSync) Cancel() {
	if s.active {
		s.active = false
		s.gen++
	}
}

// Target returns the top the animation is heading to.
func (s *ScrollSync) Target() (int, bool) {
	return int(s.target), s.active
}

func (s *ScrollSync) Animating() bool {
	return s.active
}
