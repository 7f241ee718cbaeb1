package gt

import (
	"fmt"
	"sort"
)

// Fake serves a scripted stack topology for tests. Parents maps child to
// parent; children are derived from it.
type Fake struct {
	Parents map[string]string
	Trunk   string

	// Errs maps an op name (e.g. "sync") to an error it should return.
	Errs map[string]error

	// Current is the branch Create stacks new branches onto.
	Current string

	Calls []string
}

// NewFake returns a Fake with trunk main.
func NewFake() *Fake {
	return &Fake{Parents: map[string]string{}, Trunk: "main", Errs: map[string]error{}}
}

// AddBranch records branch with the given parent.
func (f *Fake) AddBranch(branch, parent string) {
	f.Parents[branch] = parent
}

// RemoveBranch drops branch from the topology, reparenting nothing; tests
// use it to mimic gt sync deleting a merged branch.
func (f *Fake) RemoveBranch(branch string) {
	delete(f.Parents, branch)
}

func (f *Fake) ParentOf(branch string) (string, error) {
	f.Calls = append(f.Calls, "parent "+branch)
	if err := f.Errs["parent"]; err != nil {
		return "", err
	}
	return f.Parents[branch], nil
}

func (f *Fake) ChildrenOf(branch string) ([]string, error) {
	f.Calls = append(f.Calls, "children "+branch)
	if err := f.Errs["children"]; err != nil {
		return nil, err
	}
	var kids []string
	for _, candidate := range f.sortedBranches() {
		if f.Parents[candidate] == branch {
			kids = append(kids, candidate)
		}
	}
	return kids, nil
}

func (f *Fake) Downstack(branch string) ([]string, error) {
	f.Calls = append(f.Calls, "downstack "+branch)
	if err := f.Errs["downstack"]; err != nil {
		return nil, err
	}
	var chain []string
	for b := branch; b != "" && b != f.Trunk; b = f.Parents[b] {
		if _, tracked := f.Parents[b]; !tracked {
			break
		}
		chain = append([]string{b}, chain...)
	}
	return chain, nil
}

func (f *Fake) AllBranches() ([]string, error) {
	f.Calls = append(f.Calls, "ls")
	return f.sortedBranches(), f.Errs["ls"]
}

func (f *Fake) Create(branch string) error {
	f.Calls = append(f.Calls, "create "+branch)
	if err := f.Errs["create"]; err != nil {
		return err
	}
	f.Parents[branch] = f.Current
	f.Current = branch
	return nil
}

func (f *Fake) Sync(force, quiet bool) error {
	f.Calls = append(f.Calls, fmt.Sprintf("sync force=%v quiet=%v", force, quiet))
	return f.Errs["sync"]
}

func (f *Fake) Restack() error {
	f.Calls = append(f.Calls, "restack")
	return f.Errs["restack"]
}

func (f *Fake) sortedBranches() []string {
	names := make([]string, 0, len(f.Parents))
	for b := range f.Parents {
		names = append(names, b)
	}
	sort.Strings(names)
	return names
}

var _ Ops = (*Fake)(nil)
