package gt

import (
	"github.com/dagster-io/workstack/internal/ui"
	"github.com/dagster-io/workstack/internal/utils"
)

// Printing narrates mutating gt calls before delegating.
type Printing struct {
	inner   Ops
	console *ui.Console
}

// NewPrinting wraps inner with narration on console.
func NewPrinting(inner Ops, console *ui.Console) *Printing {
	return &Printing{inner: inner, console: console}
}

func (p *Printing) ParentOf(branch string) (string, error)     { return p.inner.ParentOf(branch) }
func (p *Printing) ChildrenOf(branch string) ([]string, error) { return p.inner.ChildrenOf(branch) }
func (p *Printing) Downstack(branch string) ([]string, error)  { return p.inner.Downstack(branch) }
func (p *Printing) AllBranches() ([]string, error)             { return p.inner.AllBranches() }

func (p *Printing) Create(branch string) error {
	p.console.Command(utils.ShellJoin("gt", "create", branch))
	return p.inner.Create(branch)
}

func (p *Printing) Sync(force, quiet bool) error {
	args := []string{"sync"}
	if force {
		args = append(args, "--force")
	}
	if quiet {
		args = append(args, "--quiet")
	}
	p.console.Command(utils.ShellJoin("gt", args...))
	return p.inner.Sync(force, quiet)
}

func (p *Printing) Restack() error {
	p.console.Command(utils.ShellJoin("gt", "restack"))
	return p.inner.Restack()
}

var _ Ops = (*Printing)(nil)
