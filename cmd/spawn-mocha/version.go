package main

import (
	"github.com/spf13/cobra"

	"github.com/rwx-research/spawn-mocha/internal/cli"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of spawn-mocha",
	Args:  cobra.NoArgs,
	// The version command needs none of the services set up by the root command.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.PrintVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
