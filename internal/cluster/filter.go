package cluster

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// searchSource adapts clusters to fuzzy.Source. Each cluster is matched on
// its summary content, author names and tag names.
type searchSource []Cluster

func (s searchSource) String(i int) string {
	c := s[i]
	parts := []string{c.Summary.Content}
	for _, group := range c.Summary.AuthorNames {
		parts = append(parts, group...)
	}
	for _, t := range c.Tags {
		parts = append(parts, t.Name)
	}
	return strings.Join(parts, " ")
}

func (s searchSource) Len() int {
	return len(s)
}

// Filter returns the clusters that fuzzy-match query, keeping their original
// order. A blank query matches everything.
func Filter(clusters []Cluster, query string) []Cluster {
	query = strings.TrimSpace(query)
	if query == "" {
		return clusters
	}

	matches := fuzzy.FindFrom(query, searchSource(clusters))
	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.Index
	}
	sort.Ints(indexes)

	out := make([]Cluster, len(indexes))
	for i, idx := range indexes {
		out[i] = clusters[idx]
	}
	return out
}
