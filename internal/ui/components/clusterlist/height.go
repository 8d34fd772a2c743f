package clusterlist

import "github.com/yourusername/clusterlog/internal/cluster"

// Heights sizes cluster rows. Collapsed covers the graph node and the gaps
// around it; Detail is added when the cluster is expanded.
type Heights struct {
	Collapsed int
	Detail    int
}

// NewHeights derives row heights from the node height, the vertical gap on
// each side of a node, and the detail panel height.
func NewHeights(clusterHeight, nodeGap, detailHeight int) Heights {
	return Heights{
		Collapsed: clusterHeight + 2*nodeGap,
		Detail:    detailHeight,
	}
}

// Expanded is the height of a row showing its detail panel.
func (h Heights) Expanded() int {
	return h.Collapsed + h.Detail
}

// Of returns the height of c given the current selection.
func (h Heights) Of(c cluster.Cluster, selection cluster.Set) int {
	if selection.Has(c.ID) {
		return h.Expanded()
	}
	return h.Collapsed
}

// RowHeight binds a snapshot of clusters and selection into a HeightFunc.
// Indexes outside clusters yield 0, which the engine treats as malformed.
func (h Heights) RowHeight(clusters []cluster.Cluster, selection cluster.Set) HeightFunc {
	return func(index int) int {
		if index < 0 || index >= len(clusters) {
			return 0
		}
		return h.Of(clusters[index], selection)
	}
}

// FirstChanged returns the lowest index whose expansion differs between prev
// and next, or -1 when no row in clusters is affected.
func FirstChanged(clusters []cluster.Cluster, prev, next cluster.Set) int {
	for i, c := range clusters {
		if prev.Has(c.ID) != next.Has(c.ID) {
			return i
		}
	}
	return -1
}
