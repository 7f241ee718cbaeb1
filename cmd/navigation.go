package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/land"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Switch to the child branch in the stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(land.Options{})
			if err != nil {
				return err
			}
			curr, err := ctx.Git.CurrentBranch()
			if err != nil {
				return err
			}
			if curr == "" {
				return fmt.Errorf("cannot determine current branch (detached HEAD)")
			}
			kids, err := ctx.Gt.ChildrenOf(curr)
			if err != nil {
				return err
			}
			switch len(kids) {
			case 0:
				return fmt.Errorf("'%s' has no child branch", curr)
			case 1:
				return switchTo(ctx, kids[0])
			default:
				return fmt.Errorf("'%s' has several children: %s (pick one with git checkout)", curr, strings.Join(kids, ", "))
			}
		},
	}
}

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Switch to the parent branch in the stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(land.Options{})
			if err != nil {
				return err
			}
			curr, err := ctx.Git.CurrentBranch()
			if err != nil {
				return err
			}
			if curr == "" {
				return fmt.Errorf("cannot determine current branch (detached HEAD)")
			}
			parent, err := ctx.Gt.ParentOf(curr)
			if err != nil {
				return err
			}
			if parent == "" {
				return fmt.Errorf("'%s' is at the bottom of its stack", curr)
			}
			return switchTo(ctx, parent)
		},
	}
}

// switchTo moves to branch: if it lives in another worktree, point the
// operator there; otherwise check it out in the current worktree.
func switchTo(ctx *land.Context, branch string) error {
	wt, ok, err := git.FindWorktreeForBranch(ctx.Git, branch)
	if err != nil {
		return err
	}
	if ok && wt.Path != ctx.WorkDir {
		ctx.Console.Say("'%s' is checked out in worktree %s", branch, wt.Path)
		ctx.Console.Say("cd %s", wt.Path)
		return nil
	}
	if err := ctx.Git.CheckoutBranch(ctx.WorkDir, branch); err != nil {
		return err
	}
	ctx.Console.Say("Switched to branch '%s'", branch)
	return nil
}
