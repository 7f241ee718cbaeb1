package gh

import (
	"fmt"

	"github.com/dagster-io/workstack/internal/ui"
	"github.com/dagster-io/workstack/internal/utils"
)

// Printing narrates mutating gh calls before delegating.
type Printing struct {
	inner   Ops
	console *ui.Console
}

// NewPrinting wraps inner with narration on console.
func NewPrinting(inner Ops, console *ui.Console) *Printing {
	return &Printing{inner: inner, console: console}
}

func (p *Printing) PRStatus(branch string) (PRInfo, error) { return p.inner.PRStatus(branch) }
func (p *Printing) PRMergeability(number int) (Mergeability, error) {
	return p.inner.PRMergeability(number)
}

func (p *Printing) MergePR(number int, squash bool) error {
	args := []string{"pr", "merge", fmt.Sprintf("%d", number)}
	if squash {
		args = append(args, "--squash")
	}
	p.console.Command(utils.ShellJoin("gh", args...))
	return p.inner.MergePR(number, squash)
}

var _ Ops = (*Printing)(nil)
