package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestToggle(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		prev   []int
		id     int
		want   []int
	}{
		{"multi expands alongside others", PolicyMulti, []int{1}, 2, []int{1, 2}},
		{"multi collapses selected", PolicyMulti, []int{1, 2}, 2, []int{1}},
		{"multi expands into empty", PolicyMulti, nil, 3, []int{3}},
		{"single replaces others", PolicySingle, []int{1, 2}, 3, []int{3}},
		{"single collapses selected", PolicySingle, []int{3}, 3, []int{}},
		{"single collapses only the clicked one", PolicySingle, []int{1, 3}, 3, []int{1}},
		{"stale ids survive multi toggles", PolicyMulti, []int{99}, 1, []int{1, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := NewSet(tt.prev...)
			next := Toggle(tt.id, tt.policy)(prev)
			assert.Equal(t, tt.want, next.IDs())
			assert.Equal(t, NewSet(tt.prev...).IDs(), prev.IDs(), "previous set must not change")
		})
	}
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfDistinct(rapid.IntRange(0, 50), rapid.ID[int]).Draw(t, "ids")
		id := rapid.IntRange(0, 50).Draw(t, "id")
		prev := NewSet(ids...)

		toggle := Toggle(id, PolicyMulti)
		once := toggle(prev)
		twice := toggle(once)

		if once.Has(id) == prev.Has(id) {
			t.Fatalf("toggle did not flip %d", id)
		}
		if !twice.Equal(prev) {
			t.Fatalf("toggle twice = %v, want %v", twice.IDs(), prev.IDs())
		}
	})
}

func TestSingleToggleKeepsAtMostOneExpanded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clicks := rapid.SliceOf(rapid.IntRange(0, 10)).Draw(t, "clicks")
		sel := NewSet()
		for _, id := range clicks {
			sel = Toggle(id, PolicySingle)(sel)
			if sel.Len() > 1 {
				t.Fatalf("single policy left %v expanded", sel.IDs())
			}
		}
	})
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"", "multi", "MULTI", " multi "} {
		p, err := ParsePolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, PolicyMulti, p)
	}

	p, err := ParsePolicy("Single")
	require.NoError(t, err)
	assert.Equal(t, PolicySingle, p)
	assert.Equal(t, "single", p.String())

	_, err = ParsePolicy("accordion")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestSetDiff(t *testing.T) {
	added, removed := Diff(NewSet(1, 2, 3), NewSet(2, 3, 4, 5))
	assert.Equal(t, []int{4, 5}, added)
	assert.Equal(t, []int{1}, removed)

	added, removed = Diff(NewSet(1), NewSet(1))
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestZeroSet(t *testing.T) {
	var s Set
	assert.False(t, s.Has(1))
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Equal(NewSet()))
	assert.Equal(t, []int{1}, s.With(1).IDs())
}
