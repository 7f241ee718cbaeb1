package gh

import "fmt"

// Fake serves scripted PR data and records merges for tests.
type Fake struct {
	// PRs maps branch name to its PR snapshot. Missing branches report
	// StateNone.
	PRs map[string]PRInfo
	// Mergeable maps PR number to computed mergeability; missing entries
	// default to Mergeable.
	Mergeable map[int]Mergeability
	// MergeErrs maps PR number to an error MergePR should return.
	MergeErrs map[int]error

	Merged []int
	Calls  []string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		PRs:       map[string]PRInfo{},
		Mergeable: map[int]Mergeability{},
		MergeErrs: map[int]error{},
	}
}

func (f *Fake) PRStatus(branch string) (PRInfo, error) {
	f.Calls = append(f.Calls, "pr-status "+branch)
	info, ok := f.PRs[branch]
	if !ok {
		return PRInfo{State: StateNone}, nil
	}
	return info, nil
}

func (f *Fake) PRMergeability(number int) (Mergeability, error) {
	f.Calls = append(f.Calls, fmt.Sprintf("pr-mergeability %d", number))
	if m, ok := f.Mergeable[number]; ok {
		return m, nil
	}
	return Mergeable, nil
}

func (f *Fake) MergePR(number int, squash bool) error {
	f.Calls = append(f.Calls, fmt.Sprintf("pr-merge %d squash=%v", number, squash))
	if err := f.MergeErrs[number]; err != nil {
		return err
	}
	f.Merged = append(f.Merged, number)
	// Reflect the merge in the PR table so re-queries see MERGED.
	for br, info := range f.PRs {
		if info.Number == number {
			info.State = StateMerged
			f.PRs[br] = info
		}
	}
	return nil
}

var _ Ops = (*Fake)(nil)
