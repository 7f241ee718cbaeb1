package gt

// DryRun delegates topology reads and suppresses sync/restack.
type DryRun struct {
	inner Ops
}

// NewDryRun wraps inner, normally a *Real.
func NewDryRun(inner Ops) *DryRun {
	return &DryRun{inner: inner}
}

func (d *DryRun) ParentOf(branch string) (string, error)     { return d.inner.ParentOf(branch) }
func (d *DryRun) ChildrenOf(branch string) ([]string, error) { return d.inner.ChildrenOf(branch) }
func (d *DryRun) Downstack(branch string) ([]string, error)  { return d.inner.Downstack(branch) }
func (d *DryRun) AllBranches() ([]string, error)             { return d.inner.AllBranches() }

func (d *DryRun) Create(branch string) error   { return nil }
func (d *DryRun) Sync(force, quiet bool) error { return nil }
func (d *DryRun) Restack() error               { return nil }

var _ Ops = (*DryRun)(nil)
