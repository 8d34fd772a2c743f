package clusterlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/clusterlog/internal/cluster"
	"pgregory.net/rapid"
)

func clustersWithIDs(ids ...int) []cluster.Cluster {
	out := make([]cluster.Cluster, len(ids))
	for i, id := range ids {
		out[i] = cluster.Cluster{ID: id}
	}
	return out
}

func TestHeights(t *testing.T) {
	h := NewHeights(2, 1, 10)
	assert.Equal(t, 4, h.Collapsed)
	assert.Equal(t, 14, h.Expanded())

	rowHeight := h.RowHeight(clustersWithIDs(1, 2, 3), cluster.NewSet(2))
	assert.Equal(t, []int{4, 14, 4}, []int{rowHeight(0), rowHeight(1), rowHeight(2)})
	assert.Equal(t, 0, rowHeight(3), "out of range rows are reported as malformed")
	assert.Equal(t, 0, rowHeight(-1))
}

func TestHeightsIgnoreStaleIDs(t *testing.T) {
	h := NewHeights(1, 1, 5)
	rowHeight := h.RowHeight(clustersWithIDs(1, 2), cluster.NewSet(7, 8))
	assert.Equal(t, h.Collapsed, rowHeight(0))
	assert.Equal(t, h.Collapsed, rowHeight(1))
}

func TestHeightsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfDistinct(rapid.IntRange(0, 100), rapid.ID[int]).Draw(t, "ids")
		selected := rapid.SliceOf(rapid.IntRange(0, 120)).Draw(t, "selected")
		h := NewHeights(
			rapid.IntRange(1, 4).Draw(t, "clusterHeight"),
			rapid.IntRange(0, 3).Draw(t, "nodeGap"),
			rapid.IntRange(1, 20).Draw(t, "detailHeight"),
		)

		clusters := clustersWithIDs(ids...)
		sel := cluster.NewSet(selected...)
		rowHeight := h.RowHeight(clusters, sel)
		for i, c := range clusters {
			want := h.Collapsed
			if sel.Has(c.ID) {
				want += h.Detail
			}
			if got := rowHeight(i); got != want {
				t.Fatalf("row %d (id %d) height %d, want %d", i, c.ID, got, want)
			}
		}
	})
}

func TestFirstChanged(t *testing.T) {
	clusters := clustersWithIDs(10, 20, 30)

	assert.Equal(t, 1, FirstChanged(clusters, cluster.NewSet(), cluster.NewSet(20)))
	assert.Equal(t, 0, FirstChanged(clusters, cluster.NewSet(10), cluster.NewSet(30)))
	assert.Equal(t, -1, FirstChanged(clusters, cluster.NewSet(10), cluster.NewSet(10, 99)))
}
