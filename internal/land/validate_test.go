package land

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagster-io/workstack/internal/config"
	"github.com/dagster-io/workstack/internal/gh"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/model"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}

func TestValidate_HappyPath(t *testing.T) {
	f := newFixture()

	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)

	want := []model.BranchStackEntry{
		{Branch: "feat-a", PRNumber: 1, PRTitle: "feat a"},
		{Branch: "feat-b", PRNumber: 2, PRTitle: "feat b"},
		{Branch: "feat-c", PRNumber: 3, PRTitle: "feat c"},
	}
	assert.Equal(t, want, plan.Entries)
	assert.Equal(t, "main", plan.Trunk)
	assert.Equal(t, "feat-b", plan.CurrentBranch)
}

func TestValidate_DownOnlyStopsAtCurrentBranch(t *testing.T) {
	f := newFixture()

	plan, err := Validate(f.ctx, Flags{DownOnly: true})
	require.NoError(t, err)

	var branches []string
	for _, e := range plan.Entries {
		branches = append(branches, e.Branch)
	}
	assert.Equal(t, []string{"feat-a", "feat-b"}, branches)
	assert.True(t, plan.DownOnly)
}

func TestValidate_UpstackForkEndsTheChain(t *testing.T) {
	f := newFixture()
	f.gt.AddBranch("feat-c2", "feat-b")
	f.gh.PRs["feat-c2"] = gh.PRInfo{State: gh.StateOpen, Number: 4, Title: "feat c2"}

	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)

	var branches []string
	for _, e := range plan.Entries {
		branches = append(branches, e.Branch)
	}
	// feat-b has two children, so nothing above it is scheduled.
	assert.Equal(t, []string{"feat-a", "feat-b"}, branches)
}

func TestValidate_StackingDisabledReportedFirst(t *testing.T) {
	f := newFixture()
	// Break several later preconditions at once; the earliest check wins.
	f.git.Branch = ""
	f.git.Uncommitted = true
	f.ctx.Cfg = config.NewStatic("/repo", nil)

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "stacking-tool integration")
	assert.Contains(t, verr.Remediation, "workstack init")
}

func TestValidate_DetachedHead(t *testing.T) {
	f := newFixture()
	f.git.Branch = ""
	f.git.Uncommitted = true

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "detached")
}

func TestValidate_UncommittedChanges(t *testing.T) {
	f := newFixture()
	f.git.Uncommitted = true

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "uncommitted")
	assert.Contains(t, verr.Remediation, "git add . && git commit")
}

func TestValidate_OnTrunk(t *testing.T) {
	f := newFixture()
	f.git.Branch = "main"

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "trunk")
}

func TestValidate_NoStack(t *testing.T) {
	f := newFixture()
	f.git.Branch = "orphan"

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "no stack")
}

func TestValidate_BranchCheckedOutElsewhere(t *testing.T) {
	f := newFixture()
	f.git.Worktrees = append(f.git.Worktrees, git.Worktree{Path: "/repo/worktrees/feat-c", Branch: "feat-c"})

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "feat-c")
	assert.Contains(t, verr.Message, "/repo/worktrees/feat-c")
}

func TestValidate_PRStates(t *testing.T) {
	cases := []struct {
		name    string
		state   gh.PRState
		message string
	}{
		{"no PR", gh.StateNone, "no pull request"},
		{"closed PR", gh.StateClosed, "closed"},
		{"merged PR", gh.StateMerged, "already merged"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			info := f.gh.PRs["feat-b"]
			info.State = tc.state
			f.gh.PRs["feat-b"] = info

			verr := requireValidationError(t, mustFail(t, f))
			assert.Contains(t, verr.Message, tc.message)
			assert.Contains(t, verr.Message, "feat-b")
		})
	}
}

func TestValidate_FirstBadBranchWins(t *testing.T) {
	f := newFixture()
	// feat-a (nearest trunk) broken along with feat-c; feat-a is reported.
	delete(f.gh.PRs, "feat-a")
	delete(f.gh.PRs, "feat-c")

	verr := requireValidationError(t, mustFail(t, f))
	assert.Contains(t, verr.Message, "feat-a")
}

func TestValidate_ConflictingPR(t *testing.T) {
	f := newFixture()
	f.gh.Mergeable[2] = gh.Conflicting

	_, err := Validate(f.ctx, Flags{})
	var cerr *MergeConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "feat-b", cerr.Branch)
	assert.Equal(t, 2, cerr.PRNumber)
	assert.Contains(t, cerr.Error(), "restack")
}

func TestValidate_UnknownMergeabilityWarnsOnly(t *testing.T) {
	f := newFixture()
	f.gh.Mergeable[3] = gh.Unknown

	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)
	assert.Len(t, plan.Entries, 3)
	assert.Contains(t, f.out.String(), "still being computed")
}

func TestValidate_NothingMutatedOnFailure(t *testing.T) {
	f := newFixture()
	f.gh.Mergeable[1] = gh.Conflicting

	_, err := Validate(f.ctx, Flags{})
	require.Error(t, err)
	assert.Empty(t, f.gh.Merged)
	for _, call := range f.git.Calls {
		assert.NotContains(t, call, "checkout")
		assert.NotContains(t, call, "pull")
	}
}

func mustFail(t *testing.T, f *fixture) error {
	t.Helper()
	_, err := Validate(f.ctx, Flags{})
	require.Error(t, err)
	return err
}
