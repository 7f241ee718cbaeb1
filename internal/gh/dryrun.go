package gh

// DryRun delegates reads and suppresses merges. A suppressed merge reports
// success so the lander's loop proceeds through the whole preview.
type DryRun struct {
	inner Ops
}

// NewDryRun wraps inner, normally a *Real.
func NewDryRun(inner Ops) *DryRun {
	return &DryRun{inner: inner}
}

func (d *DryRun) PRStatus(branch string) (PRInfo, error) { return d.inner.PRStatus(branch) }
func (d *DryRun) PRMergeability(number int) (Mergeability, error) {
	return d.inner.PRMergeability(number)
}

func (d *DryRun) MergePR(number int, squash bool) error { return nil }

var _ Ops = (*DryRun)(nil)
