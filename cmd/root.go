package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/config"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/land"
	"github.com/dagster-io/workstack/internal/logs"
	"github.com/dagster-io/workstack/internal/ui"
)

var (
	verbose bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "workstack",
	Short: "workstack manages stacked branches, worktrees, and their pull requests.",
	Long: `workstack drives stacked-PR workflows on top of Graphite and GitHub:
it lands whole stacks bottom-up, keeps the rest of the stack rebased,
and previews every mutating step under --dry-run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logs.SetVerbose(verbose)
		return logs.InitLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logs.Close()
	},
}

// Execute is called by main.go to run the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output for subprocess calls")

	rootCmd.AddCommand(
		newInitCmd(),
		newLandCmd(),
		newCreateCmd(),
		newSyncCmd(),
		newViewCmd(),
		newUpCmd(),
		newDownCmd(),
		newConfigCmd(),
	)

	rootCmd.SetUsageTemplate(ui.ColorHeadings(rootCmd.UsageTemplate()))
}

// newContext resolves the invoking worktree, loads config, and wires the
// effect-wrapping composition for one command invocation.
func newContext(opts land.Options) (*land.Context, error) {
	workDir, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}
	return land.NewContext(workDir, cfg, opts)
}
