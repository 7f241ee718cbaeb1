package git

import (
	"os"
	"strings"

	"github.com/dagster-io/workstack/internal/run"
)

// Ops is the git capability set the lander depends on. Real shells out to
// git; DryRun suppresses the mutating subset; Printing narrates every call;
// Fake records calls for tests. Reads always hit the wrapped implementation
// so planning sees real repository state.
type Ops interface {
	// Reads.
	CurrentBranch() (string, error)
	HasUncommittedChanges() (bool, error)
	ListWorktrees() ([]Worktree, error)
	DefaultBranch() (string, error)

	// Mutations.
	CheckoutBranch(dir, branch string) error
	Fetch(remote, branch string) error
	Pull(dir, remote, branch string, ffOnly bool) error
	AddWorktree(path, branch string) error
}

// Worktree is one entry of `git worktree list`: the checkout path and the
// branch checked out there (empty for a detached HEAD).
type Worktree struct {
	Path   string
	Branch string
}

// FindWorktreeForBranch returns the worktree that has branch checked out.
func FindWorktreeForBranch(g Ops, branch string) (Worktree, bool, error) {
	wts, err := g.ListWorktrees()
	if err != nil {
		return Worktree{}, false, err
	}
	for _, wt := range wts {
		if wt.Branch == branch {
			return wt, true, nil
		}
	}
	return Worktree{}, false, nil
}

// IsBranchCheckedOut reports whether branch is checked out in any worktree.
func IsBranchCheckedOut(g Ops, branch string) (bool, error) {
	_, ok, err := FindWorktreeForBranch(g, branch)
	return ok, err
}

// RepoRoot resolves the top-level directory of the repository containing
// the current working directory.
func RepoRoot() (string, error) {
	return run.Output("", "git", "rev-parse", "--show-toplevel")
}

// IsGitRepo reports whether the current directory is inside a git repo.
func IsGitRepo() bool {
	if _, err := os.Stat(".git"); os.IsNotExist(err) {
		_, err := RepoRoot()
		return err == nil
	}
	return true
}

// Real runs git against the repository rooted at root.
type Real struct {
	root string
}

// NewReal returns git operations bound to the repository at root.
func NewReal(root string) *Real {
	return &Real{root: root}
}

// CurrentBranch returns the checked-out branch in the root worktree, or ""
// for a detached HEAD.
func (r *Real) CurrentBranch() (string, error) {
	out, err := run.Output(r.root, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if out == "HEAD" {
		// Detached; there is no branch to report.
		return "", nil
	}
	return out, nil
}

func (r *Real) HasUncommittedChanges() (bool, error) {
	out, err := run.Output(r.root, "git", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// ListWorktrees parses `git worktree list --porcelain` into path/branch
// pairs. Detached worktrees appear with an empty branch.
func (r *Real) ListWorktrees() ([]Worktree, error) {
	res, err := run.Command(r.root, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	var wts []Worktree
	var current Worktree
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "worktree "):
			current = Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "":
			if current.Path != "" {
				wts = append(wts, current)
				current = Worktree{}
			}
		}
	}
	if current.Path != "" {
		wts = append(wts, current)
	}
	return wts, nil
}

// DefaultBranch resolves the trunk branch from origin's HEAD, falling back
// to main.
func (r *Real) DefaultBranch() (string, error) {
	out, err := run.Output(r.root, "git", "symbolic-ref", "--short", "refs/remotes/origin/HEAD")
	if err == nil && out != "" {
		if i := strings.IndexByte(out, '/'); i >= 0 {
			return out[i+1:], nil
		}
		return out, nil
	}
	// origin/HEAD is unset in some clones; main is the conventional default.
	return "main", nil
}

func (r *Real) CheckoutBranch(dir, branch string) error {
	if dir == "" {
		dir = r.root
	}
	_, err := run.Command(dir, "git", "checkout", branch)
	return err
}

func (r *Real) Fetch(remote, branch string) error {
	_, err := run.Command(r.root, "git", "fetch", remote, branch)
	return err
}

func (r *Real) Pull(dir, remote, branch string, ffOnly bool) error {
	if dir == "" {
		dir = r.root
	}
	args := []string{"pull"}
	if ffOnly {
		args = append(args, "--ff-only")
	}
	args = append(args, remote, branch)
	_, err := run.Command(dir, "git", args...)
	return err
}

func (r *Real) AddWorktree(path, branch string) error {
	_, err := run.Command(r.root, "git", "worktree", "add", path, branch)
	return err
}

var _ Ops = (*Real)(nil)

// WorktreeExists checks that a worktree path is present on disk before the
// lander navigates into it.
func WorktreeExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
