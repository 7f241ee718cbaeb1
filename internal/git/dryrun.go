package git

// DryRun wraps an inner implementation and suppresses the mutating subset.
// Reads delegate unchanged: planning has to see the real repository state.
// Suppressed mutations return success so downstream code that inspects
// results keeps working during a preview.
type DryRun struct {
	inner Ops
}

// NewDryRun wraps inner, normally a *Real.
func NewDryRun(inner Ops) *DryRun {
	return &DryRun{inner: inner}
}

func (d *DryRun) CurrentBranch() (string, error)       { return d.inner.CurrentBranch() }
func (d *DryRun) HasUncommittedChanges() (bool, error) { return d.inner.HasUncommittedChanges() }
func (d *DryRun) ListWorktrees() ([]Worktree, error)   { return d.inner.ListWorktrees() }
func (d *DryRun) DefaultBranch() (string, error)       { return d.inner.DefaultBranch() }

func (d *DryRun) CheckoutBranch(dir, branch string) error { return nil }
func (d *DryRun) Fetch(remote, branch string) error       { return nil }
func (d *DryRun) Pull(dir, remote, branch string, ffOnly bool) error {
	return nil
}
func (d *DryRun) AddWorktree(path, branch string) error { return nil }

var _ Ops = (*DryRun)(nil)
