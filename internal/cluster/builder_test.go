package cluster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clusterlog/internal/git"
)

func hash(c byte) string {
	return strings.Repeat(string(c), 40)
}

func commit(h byte, subject, author string, parents ...byte) *git.Commit {
	c := &git.Commit{
		Hash:      hash(h),
		ShortHash: hash(h)[:7],
		Author:    author,
		Email:     strings.ToLower(author) + "@example.com",
		Date:      time.Date(2024, 1, 1, 0, 0, int(h), 0, time.UTC),
		Subject:   subject,
	}
	for _, p := range parents {
		c.Parents = append(c.Parents, hash(p))
	}
	return c
}

func TestBuildGroupsLinearHistory(t *testing.T) {
	commits := []*git.Commit{
		commit('c', "third", "Alice", 'b'),
		commit('b', "second", "Bob", 'a'),
		commit('a', "first", "Alice"),
	}

	clusters := Build(commits, 10)
	require.Len(t, clusters, 1)

	c := clusters[0]
	assert.Equal(t, idFromHash(hash('a')), c.ID, "id comes from the oldest commit")
	assert.Equal(t, "third · second · first", c.Summary.Content)
	assert.Equal(t, [][]string{{"Alice"}, {"Bob"}, {"Alice"}}, c.Summary.AuthorNames)
	require.Len(t, c.Commits, 3)
	assert.Equal(t, hash('c'), c.Commits[0].Hash)
}

func TestBuildSplits(t *testing.T) {
	t.Run("max size", func(t *testing.T) {
		commits := []*git.Commit{
			commit('c', "third", "Alice", 'b'),
			commit('b', "second", "Alice", 'a'),
			commit('a', "first", "Alice"),
		}
		clusters := Build(commits, 2)
		require.Len(t, clusters, 2)
		assert.Len(t, clusters[0].Commits, 2)
		assert.Len(t, clusters[1].Commits, 1)
	})

	t.Run("merge opens a cluster", func(t *testing.T) {
		commits := []*git.Commit{
			commit('d', "after merge", "Alice", 'c'),
			commit('c', "merge", "Alice", 'b', 'e'),
			commit('b', "before", "Alice", 'a'),
			commit('a', "root", "Alice"),
		}
		clusters := Build(commits, 10)
		require.Len(t, clusters, 2)
		assert.Equal(t, "after merge", clusters[0].Summary.Content)
		assert.Equal(t, "merge · before · root", clusters[1].Summary.Content)
	})

	t.Run("first parent discontinuity", func(t *testing.T) {
		commits := []*git.Commit{
			commit('c', "other branch", "Alice", 'e'),
			commit('b', "main", "Alice", 'a'),
		}
		assert.Len(t, Build(commits, 10), 2)
	})
}

func TestBuildCollectsCoAuthorsAndTags(t *testing.T) {
	c := commit('a', "pair work", "Alice")
	c.CoAuthors = []git.Signature{{Name: "Bob", Email: "bob@example.com"}}
	c.Refs = []git.Ref{
		{Name: "main", RefType: git.RefTypeBranch},
		{Name: "v0.1.0", RefType: git.RefTypeTag},
	}

	clusters := Build([]*git.Commit{c}, 0)
	require.Len(t, clusters, 1)
	assert.Equal(t, [][]string{{"Alice", "Bob"}}, clusters[0].Summary.AuthorNames)
	require.Len(t, clusters[0].Tags, 1)
	assert.Equal(t, "v0.1.0", clusters[0].Tags[0].Name)

	authors := Authors(clusters)
	assert.Equal(t, []Person{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	}, authors)
}

func TestBuildKeepsIDsUnique(t *testing.T) {
	// Two roots whose hashes share the first 12 digits.
	a := commit('a', "one", "Alice")
	b := commit('a', "two", "Alice")
	b.Hash = hash('a')[:39] + "b"

	clusters := Build([]*git.Commit{a, b}, 10)
	require.Len(t, clusters, 2)
	assert.NotEqual(t, clusters[0].ID, clusters[1].ID)
}

func TestBuildCarriesFileStats(t *testing.T) {
	c := commit('a', "first", "Alice")
	c.Files = []git.FileStat{{Path: "main.go", Added: 3, Deleted: 1}, {Path: "README.md", Added: 2}}

	clusters := Build([]*git.Commit{c}, 10)
	require.Len(t, clusters, 1)
	assert.Equal(t, []FileChange{
		{Path: "main.go", Added: 3, Deleted: 1},
		{Path: "README.md", Added: 2},
	}, clusters[0].Commits[0].Files)
}
