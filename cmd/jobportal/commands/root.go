// Package commands implements the jobportal command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "jobportal",
		Short:         "Job portal REST backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: search ., ./config, $HOME/.jobportal, /etc/jobportal)")

	rootCmd.AddCommand(
		NewServeCommand(&configFile),
		NewTokenCommand(&configFile),
		NewVersionCommand(),
	)

	return rootCmd
}
