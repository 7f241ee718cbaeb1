package gt

import (
	"strings"

	"github.com/dagster-io/workstack/internal/run"
)

// Ops is the stacking-tool capability set, implemented over the gt CLI.
// The tool owns stack topology; nothing about parent/child relationships is
// persisted by workstack itself.
type Ops interface {
	// Reads.
	ParentOf(branch string) (string, error)
	ChildrenOf(branch string) ([]string, error)
	Downstack(branch string) ([]string, error)
	AllBranches() ([]string, error)

	// Mutations.
	Create(branch string) error
	Sync(force, quiet bool) error
	Restack() error
}

// Real shells out to gt.
type Real struct {
	root string
}

// NewReal returns stacking-tool operations bound to the repository at root.
func NewReal(root string) *Real {
	return &Real{root: root}
}

// ParentOf returns the tracked parent of branch, or "" when the branch has
// no parent (trunk, or untracked).
func (r *Real) ParentOf(branch string) (string, error) {
	out, err := run.Output(r.root, "gt", "parent", "--branch", branch)
	if err != nil {
		return "", err
	}
	return out, nil
}

// ChildrenOf returns the tracked children of branch, one per output line.
func (r *Real) ChildrenOf(branch string) ([]string, error) {
	out, err := run.Output(r.root, "gt", "children", "--branch", branch)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Downstack returns the chain below branch ordered trunk-adjacent first and
// including branch itself; trunk is excluded. gt prints nearest-first, so
// the output is reversed here.
func (r *Real) Downstack(branch string) ([]string, error) {
	out, err := run.Output(r.root, "gt", "downstack", "list", "--branch", branch)
	if err != nil {
		return nil, err
	}
	lines := splitLines(out)
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}

// AllBranches returns every branch gt tracks in this repository.
func (r *Real) AllBranches() ([]string, error) {
	out, err := run.Output(r.root, "gt", "ls", "--no-interactive")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Create makes a new stacked branch on top of the current one.
func (r *Real) Create(branch string) error {
	_, err := run.Command(r.root, "gt", "create", branch)
	return err
}

func (r *Real) Sync(force, quiet bool) error {
	args := []string{"sync"}
	if force {
		args = append(args, "--force")
	}
	if quiet {
		args = append(args, "--quiet")
	}
	_, err := run.Command(r.root, "gt", args...)
	return err
}

func (r *Real) Restack() error {
	_, err := run.Command(r.root, "gt", "restack")
	return err
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

var _ Ops = (*Real)(nil)
