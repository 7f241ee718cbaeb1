package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/land"
	"github.com/dagster-io/workstack/internal/logs"
)

func newLandCmd() *cobra.Command {
	var (
		force  bool
		dryRun bool
		down   bool
		script bool
	)

	cmd := &cobra.Command{
		Use:   "land",
		Short: "Merge the stack's pull requests bottom-up into trunk.",
		Long: `Land squash-merges each PR in the stack in order, nearest trunk first,
syncing trunk and restacking what remains after every merge. With --down
only the branches at or below the current one are landed. --dry-run
previews every step without mutating anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(land.Options{DryRun: dryRun, ScriptMode: script})
			if err != nil {
				return err
			}

			plan, err := land.Validate(ctx, land.Flags{DownOnly: down, DryRun: dryRun, Force: force})
			if err != nil {
				return err
			}

			ctx.Console.Say("Landing %d branch(es) from '%s' toward '%s':", len(plan.Entries), plan.CurrentBranch, plan.Trunk)
			for _, e := range plan.Entries {
				ctx.Console.Say("  %s  #%d  %s", e.Branch, e.PRNumber, e.PRTitle)
			}

			if !force && !dryRun {
				if !confirm(fmt.Sprintf("Land %d branch(es)?", len(plan.Entries))) {
					ctx.Console.Say("Aborted.")
					return nil
				}
			}

			result := land.Execute(ctx, plan)
			if err := land.Finish(ctx, plan, result); err != nil {
				return err
			}
			if result.Err != nil {
				ctx.Console.Say("Merged branches stay merged; fix the cause and re-run 'workstack land' for the rest of the stack.")
				logs.Error("Landing failed: %v", result.Err)
				return result.Err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview every step without mutating anything")
	cmd.Flags().BoolVar(&down, "down", false, "Land only the branches at or below the current one")
	cmd.Flags().BoolVar(&script, "script", false, "Print an activation-script path on stdout, narration on stderr")
	cmd.Flags().MarkHidden("script")

	return cmd
}

// confirm prompts on stderr and reads a y/N answer from stdin.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	ans := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return ans == "y" || ans == "yes"
}
