package cluster

import (
	"strconv"
	"strings"

	"github.com/yourusername/clusterlog/internal/git"
)

// DefaultMaxSize caps the number of commits folded into one cluster.
const DefaultMaxSize = 10

// contentSeparator joins commit subjects in a cluster's summary content.
const contentSeparator = " · "

// Build folds commits, ordered newest first, into clusters. A cluster is a run
// of commits where each one is the first parent of the one before it. Merge
// commits always open a new cluster, and no cluster grows past maxSize.
//
// Cluster ids are derived from the oldest commit's hash so that a cluster
// keeps its id when newer commits are loaded on top of it.
func Build(commits []*git.Commit, maxSize int) []Cluster {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	var (
		clusters []Cluster
		run      []*git.Commit
		used     = make(map[int]bool)
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		clusters = append(clusters, newCluster(run, used))
		run = nil
	}

	for _, c := range commits {
		if len(run) > 0 {
			prev := run[len(run)-1]
			linear := len(prev.Parents) > 0 && prev.Parents[0] == c.Hash
			if !linear || len(run) >= maxSize || len(c.Parents) > 1 {
				flush()
			}
		}
		run = append(run, c)
	}
	flush()

	return clusters
}

func newCluster(run []*git.Commit, used map[int]bool) Cluster {
	id := idFromHash(run[len(run)-1].Hash)
	for used[id] {
		id++
	}
	used[id] = true

	c := Cluster{ID: id}
	subjects := make([]string, 0, len(run))
	for _, commit := range run {
		subjects = append(subjects, commit.Subject)

		group := []string{commit.Author}
		ref := CommitRef{
			Hash:      commit.Hash,
			ShortHash: commit.ShortHash,
			Author:    Person{Name: commit.Author, Email: commit.Email},
			Date:      commit.Date,
			Subject:   commit.Subject,
		}
		for _, f := range commit.Files {
			ref.Files = append(ref.Files, FileChange{Path: f.Path, Added: f.Added, Deleted: f.Deleted})
		}
		for _, co := range commit.CoAuthors {
			group = append(group, co.Name)
			ref.CoAuthors = append(ref.CoAuthors, Person{Name: co.Name, Email: co.Email})
		}
		c.Summary.AuthorNames = append(c.Summary.AuthorNames, group)
		c.Commits = append(c.Commits, ref)

		for _, r := range commit.Refs {
			if r.RefType == git.RefTypeTag {
				c.Tags = append(c.Tags, Tag{Name: r.Name, When: commit.Date})
			}
		}
	}
	c.Summary.Content = strings.Join(subjects, contentSeparator)
	return c
}

// idFromHash reads the first 12 hex digits of a commit hash as an integer.
func idFromHash(hash string) int {
	if len(hash) > 12 {
		hash = hash[:12]
	}
	id, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return 0
	}
	return int(id)
}
