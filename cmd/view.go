package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/gh"
	"github.com/dagster-io/workstack/internal/land"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the stack as a tree with each branch's pull request",
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

			var b strings.Builder
			fmt.Fprintf(&b, "%s (trunk)\n", ctx.Trunk)
			if err := renderChildren(ctx, &b, ctx.Trunk, curr, 1); err != nil {
				return err
			}
			fmt.Print(b.String())
			return nil
		},
	}
}

func renderChildren(ctx *land.Context, b *strings.Builder, branch, current string, level int) error {
	kids, err := ctx.Gt.ChildrenOf(branch)
	if err != nil {
		return err
	}
	for _, kid := range kids {
		indent := strings.Repeat("  ", level)
		marker := ""
		if kid == current {
			marker = " *"
		}
		info, err := ctx.GH.PRStatus(kid)
		if err != nil {
			return err
		}
		if info.State == gh.StateNone {
			fmt.Fprintf(b, "%s- %s%s (no PR)\n", indent, kid, marker)
		} else {
			fmt.Fprintf(b, "%s- %s%s (#%d %s)\n", indent, kid, marker, info.Number, strings.ToLower(string(info.State)))
		}
		if err := renderChildren(ctx, b, kid, current, level+1); err != nil {
			return err
		}
	}
	return nil
}
