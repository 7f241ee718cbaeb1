package model

// BranchStackEntry is one branch scheduled for landing, paired with its open
// pull request. Entries are computed once per invocation and never mutated.
type BranchStackEntry struct {
	Branch   string
	PRNumber int
	PRTitle  string
}

// LandingPlan is the validated, ordered set of branches to land, from the
// branch nearest trunk up to the leaf (or up to the current branch when
// DownOnly is set). Entry i's stacking-tool parent is entry i-1's branch;
// entry 0's parent is Trunk.
type LandingPlan struct {
	Trunk         string
	CurrentBranch string
	Entries       []BranchStackEntry
	DownOnly      bool
	DryRun        bool
	Force         bool
}

// BranchState tracks one entry through the landing state machine.
type BranchState int

const (
	StatePending BranchState = iota
	StateMerging
	StateMerged
	StateFailed
)

func (s BranchState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateMerging:
		return "merging"
	case StateMerged:
		return "merged"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// LandingResult is the per-invocation outcome of the execution phase.
// MergedBranches holds the branches that reached StateMerged, in landing
// order, regardless of whether the run completed or aborted mid-stack.
type LandingResult struct {
	MergedBranches []string
	FinalBranch    string
	FinalPath      string
	Err            error
}
