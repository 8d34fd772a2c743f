package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) signature() *object.Signature {
	return &object.Signature{Name: "Alice", Email: "alice@example.com", When: epoch.Add(time.Duration(r.n) * time.Hour)}
}

func (r *testRepo) commit(message string) plumbing.Hash {
	r.t.Helper()
	r.n++
	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(strings.Repeat("x", r.n)), 0o644))

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add("file.txt")
	require.NoError(r.t, err)

	sig := r.signature()
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash
}

func TestOpenRepository(t *testing.T) {
	_, err := OpenRepository(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)

	tr := newTestRepo(t)
	tr.commit("init")
	sub := filepath.Join(tr.dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := OpenRepository(sub)
	require.NoError(t, err)
	assert.Equal(t, tr.dir, repo.Path(), "subdirectories resolve to the worktree root")
}

func TestGetCommits(t *testing.T) {
	tr := newTestRepo(t)
	first := tr.commit("first")
	second := tr.commit("second\n\nCo-authored-by: Bob Builder <bob@example.com>\nco-authored-by: Carol <carol@example.com>")
	third := tr.commit("third")

	repo, err := OpenRepository(tr.dir)
	require.NoError(t, err)

	commits, err := repo.GetCommits(10, "")
	require.NoError(t, err)
	require.Len(t, commits, 3)

	assert.Equal(t, third.String(), commits[0].Hash)
	assert.Equal(t, third.String()[:7], commits[0].ShortHash)
	assert.Equal(t, []string{second.String()}, commits[0].Parents)
	assert.Equal(t, "Alice", commits[0].Author)
	assert.Empty(t, commits[2].Parents)
	assert.Equal(t, first.String(), commits[2].Hash)

	assert.Equal(t, "second", commits[1].Subject)
	assert.Equal(t, []Signature{
		{Name: "Bob Builder", Email: "bob@example.com"},
		{Name: "Carol", Email: "carol@example.com"},
	}, commits[1].CoAuthors)

	limited, err := repo.GetCommits(2, "")
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetCommitsForBranch(t *testing.T) {
	tr := newTestRepo(t)
	first := tr.commit("first")
	tr.commit("second")

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), first)
	require.NoError(t, tr.repo.Storer.SetReference(ref))

	repo, err := OpenRepository(tr.dir)
	require.NoError(t, err)

	commits, err := repo.GetCommits(10, "feature")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, first.String(), commits[0].Hash)

	_, err = repo.GetCommits(10, "missing")
	assert.Error(t, err)

	branches, err := repo.GetBranches()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, b := range branches {
		names[b.Name] = b.IsHead
	}
	assert.Equal(t, map[string]bool{"master": true, "feature": false}, names)
}

func TestGetCommitsResolvesTags(t *testing.T) {
	tr := newTestRepo(t)
	first := tr.commit("first")
	second := tr.commit("second")

	_, err := tr.repo.CreateTag("v0.1.0", first, nil)
	require.NoError(t, err)
	_, err = tr.repo.CreateTag("v0.2.0", second, &gogit.CreateTagOptions{
		Tagger:  tr.signature(),
		Message: "release",
	})
	require.NoError(t, err)

	repo, err := OpenRepository(tr.dir)
	require.NoError(t, err)
	commits, err := repo.GetCommits(10, "")
	require.NoError(t, err)
	require.Len(t, commits, 2)

	tagsOf := func(c *Commit) []string {
		var out []string
		for _, r := range c.Refs {
			if r.RefType == RefTypeTag {
				out = append(out, r.Name)
			}
		}
		return out
	}
	assert.Equal(t, []string{"v0.2.0"}, tagsOf(commits[0]), "annotated tags point at their commit")
	assert.Equal(t, []string{"v0.1.0"}, tagsOf(commits[1]))
}

func TestGetRangeDiff(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	tr := newTestRepo(t)
	first := tr.commit("first")
	second := tr.commit("second")

	repo, err := OpenRepository(tr.dir)
	require.NoError(t, err)

	diff, err := repo.GetRangeDiff(first.String(), second.String())
	require.NoError(t, err)
	assert.Contains(t, diff, "file.txt")
	assert.Contains(t, diff, "new file mode", "a root commit is diffed against the empty tree")
}

func TestGetCommitsFileStats(t *testing.T) {
	tr := newTestRepo(t)
	tr.commit("first")
	tr.commit("second")

	repo, err := OpenRepository(tr.dir)
	require.NoError(t, err)

	commits, err := repo.GetCommits(10, "")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, []FileStat{{Path: "file.txt", Added: 1, Deleted: 1}}, commits[0].Files)
	assert.Equal(t, []FileStat{{Path: "file.txt", Added: 1}}, commits[1].Files, "a root commit diffs against the empty tree")

	repo.SetFileStats(false)
	commits, err = repo.GetCommits(10, "")
	require.NoError(t, err)
	assert.Nil(t, commits[0].Files)
}
