package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/config"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/logs"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Enable stacking-tool integration in the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !git.IsGitRepo() {
				return fmt.Errorf("this directory is not inside a Git repository")
			}
			root, err := git.RepoRoot()
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if err := cfg.InitRepo(); err != nil {
				return err
			}
			logs.Info("workstack initialized in %s", root)
			fmt.Println("workstack initialized. Stacking-tool integration is enabled for this repository.")
			return nil
		},
	}
}
