package clusterlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clusterlog/internal/cluster"
)

type fakeLayout struct {
	metrics Metrics
	regions map[int][2]int
}

func (f fakeLayout) Metrics() Metrics {
	return f.metrics
}

func (f fakeLayout) DetailRegion(id int) (int, int, bool) {
	r, ok := f.regions[id]
	return r[0], r[1], ok
}

func TestCenterTop(t *testing.T) {
	tests := []struct {
		name      string
		regionTop int
		regionH   int
		vh        int
		total     int
		want      int
	}{
		{"centers the region", 100, 10, 20, 500, 95},
		{"clamps at the top", 4, 10, 20, 500, 0},
		{"clamps at the bottom", 490, 10, 20, 500, 480},
		{"list shorter than viewport", 2, 4, 40, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CenterTop(tt.regionTop, tt.regionH, tt.vh, tt.total))
		})
	}
}

func TestScrollSyncTargetsAddedDetail(t *testing.T) {
	s := NewScrollSync(60, 6, 1)
	layout := fakeLayout{
		metrics: Metrics{Top: 0, ViewportHeight: 20, TotalHeight: 500},
		regions: map[int][2]int{2: {100, 10}},
	}

	cmd := s.SelectionChanged(SelectionChange{Added: []int{2}}, layout)
	require.NotNil(t, cmd)
	target, ok := s.Target()
	require.True(t, ok)
	assert.Equal(t, 95, target)
}

func TestScrollSyncIgnoresCollapseAndUnknownClusters(t *testing.T) {
	s := NewScrollSync(60, 6, 1)
	layout := fakeLayout{metrics: Metrics{ViewportHeight: 20, TotalHeight: 500}}

	assert.Nil(t, s.SelectionChanged(SelectionChange{Removed: []int{2}}, layout))
	assert.Nil(t, s.SelectionChanged(SelectionChange{Added: []int{42}}, layout))
	assert.False(t, s.Animating())
}

func TestScrollSyncLastTargetWins(t *testing.T) {
	s := NewScrollSync(60, 6, 1)
	layout := fakeLayout{
		metrics: Metrics{ViewportHeight: 20, TotalHeight: 1000},
		regions: map[int][2]int{1: {100, 10}, 2: {600, 10}},
	}

	s.SelectionChanged(SelectionChange{Added: []int{1}}, layout)
	stale := ScrollFrameMsg{gen: s.gen}
	s.SelectionChanged(SelectionChange{Added: []int{2}}, layout)

	_, cmd, ok := s.Step(stale)
	assert.False(t, ok, "frames of a replaced animation are dropped")
	assert.Nil(t, cmd)

	top := runAnimation(t, s)
	assert.Equal(t, 595, top)
}

func TestScrollSyncCancel(t *testing.T) {
	s := NewScrollSync(60, 6, 1)
	layout := fakeLayout{
		metrics: Metrics{ViewportHeight: 20, TotalHeight: 1000},
		regions: map[int][2]int{1: {100, 10}},
	}
	s.SelectionChanged(SelectionChange{Added: []int{1}}, layout)
	frame := ScrollFrameMsg{gen: s.gen}

	s.Cancel()
	assert.False(t, s.Animating())
	_, _, ok := s.Step(frame)
	assert.False(t, ok)
}

// runAnimation steps s until it settles and returns the final top.
func runAnimation(t *testing.T, s *ScrollSync) int {
	t.Helper()
	top := 0
	for i := 0; s.Animating(); i++ {
		require.Less(t, i, 10000, "animation did not settle")
		var ok bool
		top, _, ok = s.Step(ScrollFrameMsg{gen: s.gen})
		require.True(t, ok)
	}
	return top
}

var _ Layout = fakeLayout{}
var _ SelectionListener = (*ScrollSync)(nil)
var _ Provider = (*cluster.Store)(nil)
