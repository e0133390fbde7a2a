package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "projekttage",
	Short:         "Project-week wish/partner assignment engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI command tree. The returned error, if any, should
// be mapped to a process exit code with ExitCodeFor.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(solveCmd, importWishesCmd, importRosterListCmd, resolveCmd)
}
