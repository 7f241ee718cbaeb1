package git

import "fmt"

// Fake is the in-memory Ops used by tests. It records every call in order
// and mutates its own worktree table on checkout so call sequences behave
// like a real repository.
type Fake struct {
	Branch      string
	Uncommitted bool
	Worktrees   []Worktree
	Trunk       string

	// Errs maps an op name (e.g. "pull") to an error it should return.
	Errs map[string]error

	Calls []string
}

// NewFake returns a Fake with trunk main.
func NewFake() *Fake {
	return &Fake{Trunk: "main", Errs: map[string]error{}}
}

func (f *Fake) record(format string, v ...interface{}) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, v...))
}

func (f *Fake) CurrentBranch() (string, error) {
	f.record("current-branch")
	if err := f.Errs["current-branch"]; err != nil {
		return "", err
	}
	return f.Branch, nil
}

func (f *Fake) HasUncommittedChanges() (bool, error) {
	f.record("status")
	return f.Uncommitted, f.Errs["status"]
}

func (f *Fake) ListWorktrees() ([]Worktree, error) {
	f.record("worktree-list")
	if err := f.Errs["worktree-list"]; err != nil {
		return nil, err
	}
	out := make([]Worktree, len(f.Worktrees))
	copy(out, f.Worktrees)
	return out, nil
}

func (f *Fake) DefaultBranch() (string, error) {
	f.record("default-branch")
	return f.Trunk, f.Errs["default-branch"]
}

func (f *Fake) CheckoutBranch(dir, branch string) error {
	f.record("checkout %s %s", dir, branch)
	if err := f.Errs["checkout"]; err != nil {
		return err
	}
	for i := range f.Worktrees {
		if f.Worktrees[i].Path == dir {
			f.Worktrees[i].Branch = branch
		}
	}
	if dir == "" || (len(f.Worktrees) > 0 && f.Worktrees[0].Path == dir) {
		f.Branch = branch
	}
	return nil
}

func (f *Fake) Fetch(remote, branch string) error {
	f.record("fetch %s %s", remote, branch)
	return f.Errs["fetch"]
}

func (f *Fake) Pull(dir, remote, branch string, ffOnly bool) error {
	f.record("pull %s %s %s ff=%v", dir, remote, branch, ffOnly)
	return f.Errs["pull"]
}

func (f *Fake) AddWorktree(path, branch string) error {
	f.record("worktree-add %s %s", path, branch)
	if err := f.Errs["worktree-add"]; err != nil {
		return err
	}
	f.Worktrees = append(f.Worktrees, Worktree{Path: path, Branch: branch})
	return nil
}

var _ Ops = (*Fake)(nil)
