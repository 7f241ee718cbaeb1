package git

import (
	"github.com/dagster-io/workstack/internal/ui"
	"github.com/dagster-io/workstack/internal/utils"
)

// Printing narrates every mutating call as the equivalent shell command
// before delegating. It never suppresses execution; composing it over a
// DryRun gives identical narration whether or not the mutation happens.
type Printing struct {
	inner   Ops
	console *ui.Console
}

// NewPrinting wraps inner with narration on console.
func NewPrinting(inner Ops, console *ui.Console) *Printing {
	return &Printing{inner: inner, console: console}
}

func (p *Printing) CurrentBranch() (string, error)       { return p.inner.CurrentBranch() }
func (p *Printing) HasUncommittedChanges() (bool, error) { return p.inner.HasUncommittedChanges() }
func (p *Printing) ListWorktrees() ([]Worktree, error)   { return p.inner.ListWorktrees() }
func (p *Printing) DefaultBranch() (string, error)       { return p.inner.DefaultBranch() }

func (p *Printing) CheckoutBranch(dir, branch string) error {
	if dir == "" {
		p.console.Command(utils.ShellJoin("git", "checkout", branch))
	} else {
		p.console.Command(utils.ShellJoin("git", "-C", dir, "checkout", branch))
	}
	return p.inner.CheckoutBranch(dir, branch)
}

func (p *Printing) Fetch(remote, branch string) error {
	p.console.Command(utils.ShellJoin("git", "fetch", remote, branch))
	return p.inner.Fetch(remote, branch)
}

func (p *Printing) Pull(dir, remote, branch string, ffOnly bool) error {
	args := []string{"pull"}
	if dir != "" {
		args = []string{"-C", dir, "pull"}
	}
	if ffOnly {
		args = append(args, "--ff-only")
	}
	args = append(args, remote, branch)
	p.console.Command(utils.ShellJoin("git", args...))
	return p.inner.Pull(dir, remote, branch, ffOnly)
}

func (p *Printing) AddWorktree(path, branch string) error {
	p.console.Command(utils.ShellJoin("git", "worktree", "add", path, branch))
	return p.inner.AddWorktree(path, branch)
}

var _ Ops = (*Printing)(nil)
