// Package cluster groups commits into clusters and owns the selection state
// that decides which clusters are shown expanded.
package cluster

import "time"

// Person is a commit author or co-author.
type Person struct {
	Name  string
	Email string
}

// Tag is a tag pointing at one of the cluster's commits. When is the commit
// time of the tagged commit.
type Tag struct {
	Name string
	When time.Time
}

// CommitRef is the subset of a commit the detail panel needs.
type CommitRef struct {
	Hash      string
	ShortHash string
	Author    Person
	CoAuthors []Person
	Date      time.Time
	Subject   string
	Files     []FileChange
}

// FileChange is one file touched by a commit, with its line counts.
type FileChange struct {
	Path    string
	Added   int
	Deleted int
}

// Summary is what a collapsed cluster row shows.
type Summary struct {
	Content string
	// AuthorNames holds one group per commit: the author followed by any
	// co-authors.
	AuthorNames [][]string
}

// Cluster is a group of commits presented as a single row. Commits are
// ordered newest first. A Cluster is never mutated after Build returns it.
type Cluster struct {
	ID      int
	Tags    []Tag
	Summary Summary
	Commits []CommitRef
}

// IndexOf returns the position of the cluster with the given id, or -1.
func IndexOf(clusters []Cluster, id int) int {
	for i := range clusters {
		if clusters[i].ID == id {
			return i
		}
	}
	return -1
}

// Authors returns every distinct person that authored or co-authored a commit
// in the given clusters, in first-seen order.
func Authors(clusters []Cluster) []Person {
	seen := make(map[string]bool)
	var people []Person
	add := func(p Person) {
		if p.Name == "" || seen[p.Name] {
			return
		}
		seen[p.Name] = true
		people = append(people, p)
	}
	for _, c := range clusters {
		for _, commit := range c.Commits {
			add(commit.Author)
			for _, co := range commit.CoAuthors {
				add(co)
			}
		}
	}
	return people
}
