package land

import (
	"fmt"

	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/logs"
	"github.com/dagster-io/workstack/internal/model"
)

// Execute lands the plan bottom-up: squash-merge each entry, then (unless
// DownOnly) sync trunk and restack what remains. The first failure stops
// the loop; merges already completed are left standing, since a merged PR
// cannot safely be un-merged. The returned result always lists the merged
// branches in order, even on abort.
func Execute(ctx *Context, plan *model.LandingPlan) *model.LandingResult {
	result := &model.LandingResult{}
	states := make([]model.BranchState, len(plan.Entries))

	for i, entry := range plan.Entries {
		states[i] = model.StateMerging
		ctx.Console.Say("Landing '%s' (#%d): %s", entry.Branch, entry.PRNumber, entry.PRTitle)

		if err := ctx.GH.MergePR(entry.PRNumber, true); err != nil {
			states[i] = model.StateFailed
			result.Err = fmt.Errorf("failed to merge PR #%d for branch '%s': %w", entry.PRNumber, entry.Branch, err)
			logs.Error("Merge aborted at '%s' (%d of %d): %v", entry.Branch, i+1, len(plan.Entries), err)
			break
		}
		states[i] = model.StateMerged
		result.MergedBranches = append(result.MergedBranches, entry.Branch)
		logs.Info("Merged '%s' (#%d)", entry.Branch, entry.PRNumber)

		if plan.DownOnly {
			// Only the requested branches are merged; siblings above are
			// left untouched and trunk is not synced on their behalf.
			continue
		}

		if err := syncTrunk(ctx); err != nil {
			result.Err = fmt.Errorf("failed to sync trunk after merging '%s': %w", entry.Branch, err)
			break
		}
		if i < len(plan.Entries)-1 {
			if err := restackRemaining(ctx); err != nil {
				result.Err = fmt.Errorf("failed to restack after merging '%s': %w", entry.Branch, err)
				break
			}
		}
	}
	return result
}

// syncTrunk brings the local trunk ref up to the remote tip. If trunk is
// checked out in some worktree, pull in place there; otherwise checkout
// trunk in the root worktree, pull, and restore the branch that was active
// before. That ordering never has trunk checked out in two worktrees at
// once.
func syncTrunk(ctx *Context) error {
	if err := ctx.Git.Fetch("origin", ctx.Trunk); err != nil {
		return err
	}

	wt, ok, err := git.FindWorktreeForBranch(ctx.Git, ctx.Trunk)
	if err != nil {
		return err
	}
	if ok {
		return ctx.Git.Pull(wt.Path, "origin", ctx.Trunk, true)
	}

	// Trunk is checked out nowhere. Use the root worktree (first entry of
	// the worktree list) and put its previous branch back afterward.
	wts, err := ctx.Git.ListWorktrees()
	if err != nil {
		return err
	}
	if len(wts) == 0 {
		return fmt.Errorf("git reported no worktrees for this repository")
	}
	root := wts[0]

	if err := ctx.Git.CheckoutBranch(root.Path, ctx.Trunk); err != nil {
		return err
	}
	if err := ctx.Git.Pull(root.Path, "origin", ctx.Trunk, true); err != nil {
		return err
	}
	if root.Branch != "" && root.Branch != ctx.Trunk {
		if err := ctx.Git.CheckoutBranch(root.Path, root.Branch); err != nil {
			return err
		}
	}
	return nil
}

// restackRemaining reapplies the unmerged upstack onto the new trunk tip.
func restackRemaining(ctx *Context) error {
	if err := ctx.Gt.Sync(true, true); err != nil {
		return err
	}
	return ctx.Gt.Restack()
}
