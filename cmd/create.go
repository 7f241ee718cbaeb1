package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/land"
	"github.com/dagster-io/workstack/internal/logs"
)

func newCreateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "create <branch-name>",
		Short: "Create a stacked branch on top of the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch := args[0]
			if branch == "" {
				return fmt.Errorf("branch name cannot be empty")
			}

			ctx, err := newContext(land.Options{DryRun: dryRun})
			if err != nil {
				return err
			}
			if err := ctx.Gt.Create(branch); err != nil {
				logs.Error("Failed to create stacked branch '%s': %v", branch, err)
				return err
			}
			if !dryRun {
				ctx.Console.Success("Created stacked branch '%s'.", branch)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without creating the branch")
	return cmd
}
