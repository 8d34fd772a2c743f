package cluster

import "sort"

// Set is an immutable set of cluster ids. The zero value is an empty set.
// With and Without return new sets and leave the receiver untouched, so a
// Set handed out as a snapshot can be read for a whole render cycle.
type Set struct {
	ids map[int]struct{}
}

// NewSet returns a set holding ids.
func NewSet(ids ...int) Set {
	s := Set{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the members in ascending order.
func (s Set) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// With returns a copy of s that also contains id.
func (s Set) With(id int) Set {
	next := Set{ids: make(map[int]struct{}, len(s.ids)+1)}
	for k := range s.ids {
		next.ids[k] = struct{}{}
	}
	next.ids[id] = struct{}{}
	return next
}

// Without returns a copy of s that does not contain id.
func (s Set) Without(id int) Set {
	next := Set{ids: make(map[int]struct{}, len(s.ids))}
	for k := range s.ids {
		if k != id {
			next.ids[k] = struct{}{}
		}
	}
	return next
}

// Equal reports whether both sets have the same members.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Diff returns the ids present in next but not prev (added) and the ids
// present in prev but not next (removed), both ascending.
func Diff(prev, next Set) (added, removed []int) {
	for _, id := range next.IDs() {
		if !prev.Has(id) {
			added = append(added, id)
		}
	}
	for _, id := range prev.IDs() {
		if !next.Has(id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}
