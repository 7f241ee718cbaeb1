package land

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/run"
)

func TestExecute_FullSuccessMergesBottomUp(t *testing.T) {
	f := newFixture()
	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)

	result := Execute(f.ctx, plan)
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"feat-a", "feat-b", "feat-c"}, result.MergedBranches)
	assert.Equal(t, []int{1, 2, 3}, f.gh.Merged)
}

func TestExecute_SyncsTrunkAndRestacksBetweenMerges(t *testing.T) {
	f := newFixture()
	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)

	result := Execute(f.ctx, plan)
	require.NoError(t, result.Err)

	fetches := countCalls(f.git.Calls, "fetch origin main")
	assert.Equal(t, 3, fetches, "trunk is fetched after every merge")

	restacks := countCalls(f.gt.Calls, "restack")
	assert.Equal(t, 2, restacks, "restack runs between merges, not after the last")
}

func TestExecute_MidStackFailureLeavesPrefixMerged(t *testing.T) {
	f := newFixture()
	f.gh.MergeErrs[2] = &run.ExternalToolFailure{
		Command: "gh pr merge 2 --squash",
		Stderr:  "GraphQL: Pull request is not mergeable",
		Err:     errors.New("exit status 1"),
	}
	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)

	result := Execute(f.ctx, plan)
	require.Error(t, result.Err)
	assert.Equal(t, []string{"feat-a"}, result.MergedBranches)
	assert.Equal(t, []int{1}, f.gh.Merged, "no merge is attempted past the failure")
	assert.Contains(t, result.Err.Error(), "feat-b")
	assert.Contains(t, result.Err.Error(), "Pull request is not mergeable", "the tool's stderr is surfaced verbatim")
}

func TestExecute_DownOnlySkipsSyncAndRestack(t *testing.T) {
	f := newFixture()
	plan, err := Validate(f.ctx, Flags{DownOnly: true})
	require.NoError(t, err)

	result := Execute(f.ctx, plan)
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"feat-a", "feat-b"}, result.MergedBranches)
	assert.NotContains(t, f.gh.Merged, 3, "feat-c is left untouched")

	for _, call := range f.git.Calls {
		assert.False(t, strings.HasPrefix(call, "fetch"), "no trunk sync in down-only mode: %s", call)
		assert.False(t, strings.HasPrefix(call, "pull"), "no trunk sync in down-only mode: %s", call)
	}
	assert.Equal(t, 0, countCalls(f.gt.Calls, "restack"))
}

func TestSyncTrunk_PullsInPlaceWhenTrunkHasAWorktree(t *testing.T) {
	f := newFixture()
	f.git.Worktrees = append(f.git.Worktrees, git.Worktree{Path: "/repo/worktrees/main", Branch: "main"})

	require.NoError(t, syncTrunk(f.ctx))

	assert.Contains(t, f.git.Calls, "pull /repo/worktrees/main origin main ff=true")
	for _, call := range f.git.Calls {
		assert.False(t, strings.HasPrefix(call, "checkout"), "no checkout when trunk is already checked out: %s", call)
	}
}

func TestSyncTrunk_CheckoutPullRestoreWhenTrunkNowhere(t *testing.T) {
	f := newFixture()
	// Fixture: only the root worktree at /repo with feat-b; trunk is
	// checked out nowhere.
	require.NoError(t, syncTrunk(f.ctx))

	var mutations []string
	for _, call := range f.git.Calls {
		if strings.HasPrefix(call, "checkout") || strings.HasPrefix(call, "pull") {
			mutations = append(mutations, call)
		}
	}
	assert.Equal(t, []string{
		"checkout /repo main",
		"pull /repo origin main ff=true",
		"checkout /repo feat-b",
	}, mutations)
}

func TestExecute_RestackFailureAborts(t *testing.T) {
	f := newFixture()
	f.gt.Errs["restack"] = errors.New("rebase conflict in feat-b")
	plan, err := Validate(f.ctx, Flags{})
	require.NoError(t, err)

	result := Execute(f.ctx, plan)
	require.Error(t, result.Err)
	assert.Equal(t, []string{"feat-a"}, result.MergedBranches, "the completed merge stands")
	assert.Contains(t, result.Err.Error(), "restack")
}

func countCalls(calls []string, want string) int {
	n := 0
	for _, c := range calls {
		if c == want {
			n++
		}
	}
	return n
}
