package land

import (
	"fmt"

	"github.com/dagster-io/workstack/internal/gh"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/logs"
	"github.com/dagster-io/workstack/internal/model"
)

// Flags are the operator-facing switches of a landing run.
type Flags struct {
	DownOnly bool
	DryRun   bool
	Force    bool
}

// Validate runs the precondition checks in their fixed order and, when all
// pass, returns the ordered LandingPlan. The first failing check is the one
// reported; nothing has been mutated by the time any of them fails.
//
// Order: stacking integration, resolvable branch, clean tree, not on trunk,
// stack exists, no cross-worktree checkout, every PR open, no conflicts.
func Validate(ctx *Context, flags Flags) (*model.LandingPlan, error) {
	// 1. Stacking-tool integration is enabled for this repo.
	if !ctx.Cfg.StackingEnabled() {
		return nil, &ValidationError{
			Message:     "stacking-tool integration is not enabled for this repository.",
			Remediation: "workstack init",
		}
	}

	// 2. Current branch resolves (not a detached HEAD).
	current, err := ctx.Git.CurrentBranch()
	if err != nil {
		return nil, err
	}
	if current == "" {
		return nil, &ValidationError{
			Message:     "HEAD is detached; there is no current branch to land.",
			Remediation: "git checkout <branch>",
		}
	}

	// 3. Clean working tree.
	dirty, err := ctx.Git.HasUncommittedChanges()
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, &ValidationError{
			Message:     "the working tree has uncommitted changes.",
			Remediation: "git add . && git commit (or git stash)",
		}
	}

	// 4. Not on trunk.
	if current == ctx.Trunk {
		return nil, &ValidationError{
			Message:     fmt.Sprintf("'%s' is the trunk branch; there is nothing to land from here.", ctx.Trunk),
			Remediation: "git checkout <stacked-branch>",
		}
	}

	// 5. A stack exists for the current branch.
	branches, err := scheduledBranches(ctx, current, flags.DownOnly)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, &ValidationError{
			Message:     fmt.Sprintf("no stack found for branch '%s'.", current),
			Remediation: "gt track (or workstack create to start a stack)",
		}
	}

	// 6. No scheduled branch is checked out in a different worktree; git
	// forbids the same branch checked out twice, and the sync phase moves
	// branches around.
	for _, branch := range branches {
		wt, ok, err := git.FindWorktreeForBranch(ctx.Git, branch)
		if err != nil {
			return nil, err
		}
		if ok && wt.Path != ctx.WorkDir {
			return nil, &ValidationError{
				Message:     fmt.Sprintf("branch '%s' is checked out in another worktree (%s).", branch, wt.Path),
				Remediation: fmt.Sprintf("git -C %s checkout --detach (or remove the worktree)", wt.Path),
			}
		}
	}

	// 7. Every scheduled branch has an OPEN pull request.
	entries := make([]model.BranchStackEntry, 0, len(branches))
	for _, branch := range branches {
		info, err := ctx.GH.PRStatus(branch)
		if err != nil {
			return nil, err
		}
		switch info.State {
		case gh.StateOpen:
			entries = append(entries, model.BranchStackEntry{
				Branch:   branch,
				PRNumber: info.Number,
				PRTitle:  info.Title,
			})
		case gh.StateNone:
			return nil, &ValidationError{
				Message:     fmt.Sprintf("branch '%s' has no pull request.", branch),
				Remediation: "gt submit (to open PRs for the stack)",
			}
		case gh.StateClosed:
			return nil, &ValidationError{
				Message:     fmt.Sprintf("the pull request for branch '%s' (#%d) is closed.", branch, info.Number),
				Remediation: fmt.Sprintf("gh pr reopen %d (or drop the branch from the stack)", info.Number),
			}
		case gh.StateMerged:
			return nil, &ValidationError{
				Message:     fmt.Sprintf("the pull request for branch '%s' (#%d) is already merged.", branch, info.Number),
				Remediation: "gt sync (to prune merged branches from the stack)",
			}
		default:
			return nil, &ValidationError{
				Message: fmt.Sprintf("unexpected PR state %q for branch '%s'.", info.State, branch),
			}
		}
	}

	// 8. No PR conflicts with its base. UNKNOWN means GitHub has not
	// finished computing mergeability; warn and continue.
	for _, e := range entries {
		m, err := ctx.GH.PRMergeability(e.PRNumber)
		if err != nil {
			return nil, err
		}
		switch m {
		case gh.Conflicting:
			return nil, &MergeConflictError{Branch: e.Branch, PRNumber: e.PRNumber}
		case gh.Unknown:
			ctx.Console.Warn("mergeability of PR #%d (%s) is still being computed by GitHub; proceeding.", e.PRNumber, e.Branch)
		}
	}

	logs.Info("Validated landing plan: %d branches from '%s'", len(entries), current)
	return &model.LandingPlan{
		Trunk:         ctx.Trunk,
		CurrentBranch: current,
		Entries:       entries,
		DownOnly:      flags.DownOnly,
		DryRun:        flags.DryRun,
		Force:         flags.Force,
	}, nil
}

// scheduledBranches returns the branches to land, trunk-adjacent first. The
// downstack always ends at the current branch; without downOnly the chain
// extends upward while exactly one child continues it (a fork upstack ends
// the chain, since landing order would be ambiguous past it).
func scheduledBranches(ctx *Context, current string, downOnly bool) ([]string, error) {
	chain, err := ctx.Gt.Downstack(current)
	if err != nil {
		return nil, err
	}
	if downOnly || len(chain) == 0 {
		return chain, nil
	}
	for tip := current; ; {
		kids, err := ctx.Gt.ChildrenOf(tip)
		if err != nil {
			return nil, err
		}
		if len(kids) != 1 {
			break
		}
		tip = kids[0]
		chain = append(chain, tip)
	}
	return chain, nil
}
