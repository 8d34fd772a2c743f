package git

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ErrNotRepository is returned when the given path is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

type Repository struct {
	repo      *git.Repository
	path      string
	fileStats bool
}

type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Email     string
	CoAuthors []Signature
	Date      time.Time
	Message   string
	Subject   string
	Parents   []string
	Refs      []Ref
	Files     []FileStat
}

// FileStat is the line count change of one file in a commit.
type FileStat struct {
	Path    string
	Added   int
	Deleted int
}

// Signature is a name/email pair from a Co-authored-by trailer.
type Signature struct {
	Name  string
	Email string
}

type Ref struct {
	Name     string
	RefType  RefType
	IsHead   bool
	IsRemote bool
}

type RefType int

const (
	RefTypeBranch RefType = iota
	RefTypeTag
)

type Branch struct {
	Name      string
	IsHead    bool
	IsCurrent bool
	Hash      string
}

var coAuthorPattern = regexp.MustCompile(`(?im)^co-authored-by:\s*(.+?)\s*<([^>]*)>\s*$`)

func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	// DetectDotGit may have walked up from path; keep the worktree root.
	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		repo:      repo,
		path:      root,
		fileStats: true,
	}, nil
}

// SetFileStats turns per-commit file stats in GetCommits on or off. They are
// on by default and cost one tree diff per commit.
func (r *Repository) SetFileStats(enabled bool) {
	r.fileStats = enabled
}

// Path returns the root of the repository's worktree.
func (r *Repository) Path() string {
	return r.path
}

// GetCommits walks history newest first and returns at most limit commits.
// An empty branch walks every ref; otherwise only the named local branch.
func (r *Repository) GetCommits(limit int, branch string) ([]*Commit, error) {
	opts := &git.LogOptions{Order: git.LogOrderCommitterTime}
	if branch == "" {
		head, err := r.repo.Head()
		if err != nil {
			return nil, fmt.Errorf("resolve HEAD: %w", err)
		}
		opts.From = head.Hash()
		opts.All = true
	} else {
		ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
		if err != nil {
			return nil, fmt.Errorf("resolve branch %s: %w", branch, err)
		}
		opts.From = ref.Hash()
	}

	refMap := r.buildRefMap()

	iter, err := r.repo.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	commits := make([]*Commit, 0, limit)

	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= limit {
			return storer.ErrStop
		}
		commit := newCommit(c, refMap[c.Hash.String()])
		if r.fileStats {
			files, err := fileStats(c)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", commit.ShortHash, err)
			}
			commit.Files = files
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}

	return commits, nil
}

func newCommit(c *object.Commit, refs []Ref) *Commit {
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}

	subject, _, _ := strings.Cut(c.Message, "\n")

	hash := c.Hash.String()
	return &Commit{
		Hash:      hash,
		ShortHash: hash[:7],
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		CoAuthors: parseCoAuthors(c.Message),
		Date:      c.Author.When,
		Message:   c.Message,
		Subject:   strings.TrimSpace(subject),
		Parents:   parents,
		Refs:      refs,
	}
}

// fileStats diffs c against its first parent, or the empty tree for a root
// commit.
func fileStats(c *object.Commit) ([]FileStat, error) {
	stats, err := c.Stats()
	if err != nil {
		return nil, err
	}
	files := make([]FileStat, len(stats))
	for i, s := range stats {
		files[i] = FileStat{Path: s.Name, Added: s.Addition, Deleted: s.Deletion}
	}
	return files, nil
}

func parseCoAuthors(message string) []Signature {
	var out []Signature
	for _, m := range coAuthorPattern.FindAllStringSubmatch(message, -1) {
		out = append(out, Signature{Name: strings.TrimSpace(m[1]), Email: strings.TrimSpace(m[2])})
	}
	return out
}

func (r *Repository) buildRefMap() map[string][]Ref {
	refMap := make(map[string][]Ref)

	head, _ := r.repo.Head()
	headName := ""
	if head != nil {
		headName = head.Name().String()
	}

	refs, err := r.repo.References()
	if err != nil {
		return refMap
	}

	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()

		switch {
		case name.IsBranch():
			hash := ref.Hash().String()
			refMap[hash] = append(refMap[hash], Ref{
				Name:    name.Short(),
				RefType: RefTypeBranch,
				IsHead:  name.String() == headName,
			})
		case name.IsRemote():
			hash := ref.Hash().String()
			refMap[hash] = append(refMap[hash], Ref{
				Name:     name.Short(),
				RefType:  RefTypeBranch,
				IsRemote: true,
			})
		case name.IsTag():
			// Annotated tags point at a tag object; index them by the commit.
			hash := ref.Hash()
			if tagObj, err := r.repo.TagObject(hash); err == nil {
				hash = tagObj.Target
			}
			key := hash.String()
			refMap[key] = append(refMap[key], Ref{
				Name:    name.Short(),
				RefType: RefTypeTag,
			})
		}
		return nil
	})

	return refMap
}

func (r *Repository) GetBranches() ([]*Branch, error) {
	branches := []*Branch{}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	refs, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		isHead := ref.Name() == head.Name()
		branches = append(branches, &Branch{
			Name:      ref.Name().Short(),
			IsHead:    isHead,
			IsCurrent: isHead,
			Hash:      ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return branches, nil
}
