package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/action"
	"github.com/dagster-io/workstack/internal/land"
)

func newSyncCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the stack with the remote and restack everything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(land.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			acts := []action.Action{
				{
					Description: "sync tracked branches with the remote",
					Run: func() (interface{}, error) {
						return nil, ctx.Gt.Sync(force, false)
					},
				},
				{
					Description: "restack every branch onto its parent",
					Run: func() (interface{}, error) {
						return nil, ctx.Gt.Restack()
					},
				},
			}
			if _, err := action.Run(ctx.Stream, acts); err != nil {
				return err
			}
			if !dryRun {
				ctx.Console.Success("Stack synced and restacked.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without mutating anything")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete branches whose PRs were merged or closed without asking")
	return cmd
}
