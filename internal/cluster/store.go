package cluster

import "sync"

// Store is the cluster data provider. It holds the ordered clusters, the
// active filter and the selection, and it is the only place they change.
// Accessors return snapshots: slices and sets are replaced on update, never
// modified in place.
type Store struct {
	mu        sync.RWMutex
	all       []Cluster
	visible   []Cluster
	query     string
	selection Set
}

func NewStore(clusters []Cluster) *Store {
	s := &Store{selection: NewSet()}
	s.SetClusters(clusters)
	return s
}

// Clusters returns the clusters that pass the current filter, in order.
func (s *Store) Clusters() []Cluster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

// All returns every cluster regardless of the filter.
func (s *Store) All() []Cluster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all
}

func (s *Store) Selection() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SetSelection replaces the selection with update(current). It is the only
// way to change which clusters are expanded.
func (s *Store) SetSelection(update Updater) {
	if update == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = update(s.selection)
}

// SetClusters replaces the data set. The selection is kept as is; ids that no
// longer match a cluster simply render collapsed.
func (s *Store) SetClusters(clusters []Cluster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = clusters
	s.visible = Filter(clusters, s.query)
}

func (s *Store) SetFilter(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.visible = Filter(s.all, query)
}

func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// ClusterByID looks a cluster up among the visible clusters.
func (s *Store) ClusterByID(id int) (Cluster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := IndexOf(s.visible, id); i >= 0 {
		return s.visible[i], true
	}
	return Cluster{}, false
}
