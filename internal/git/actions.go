package git

import (
	"fmt"
	"os/exec"
)

// emptyTreeHash is the id git assigns to a tree with no entries.
const emptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

func (r *Repository) Fetch() error {
	cmd := exec.Command("git", "fetch", "--all", "--tags")
	cmd.Dir = r.path
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git fetch: %w: %s", err, out)
	}
	return nil
}

// GetRangeDiff returns the combined patch of every commit from oldest up to
// and including newest. A root commit is diffed against the empty tree.
func (r *Repository) GetRangeDiff(oldest, newest string) (string, error) {
	base := oldest + "^"
	if r.isRoot(oldest) {
		base = emptyTreeHash
	}
	args := []string{"diff", "--no-color", base, newest}
	cmd := exec.Command("git", args...)
	cmd.Dir = r.path
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(output), nil
}

func (r *Repository) isRoot(hash string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", hash+"^")
	cmd.Dir = r.path
	return cmd.Run() != nil
}
