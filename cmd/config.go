package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagster-io/workstack/internal/config"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/logs"
)

func newConfigCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage workstack configuration (local or global).",
	}

	load := func() (*config.Config, error) {
		root, err := git.RepoRoot()
		if err != nil {
			// Global config is still reachable outside a repo.
			root = "."
		}
		return config.Load(root)
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a config value (local overrides global).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], cfg.Get(args[0]))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a per-repo config value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1], false); err != nil {
				logs.Error("Failed to set local config '%s': %v", args[0], err)
				return err
			}
			fmt.Printf("Set local config: %s = %s\n", args[0], args[1])
			return nil
		},
	}

	setGlobalCmd := &cobra.Command{
		Use:   "set-global <key> <value>",
		Short: "Set a global config value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1], true); err != nil {
				logs.Error("Failed to set global config '%s': %v", args[0], err)
				return err
			}
			fmt.Printf("Set global config: %s = %s\n", args[0], args[1])
			return nil
		},
	}

	cfgCmd.AddCommand(getCmd, setCmd, setGlobalCmd)
	return cfgCmd
}
