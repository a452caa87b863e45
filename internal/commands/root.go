package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finsight",
		Short:   "Personal finance ledger and analytics",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "finsight.yaml", "path to config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newLoanCommand())
	rootCmd.AddCommand(newTrainCommand())
	rootCmd.AddCommand(newNetWorthCommand())

	return rootCmd
}
