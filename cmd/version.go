package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-eix/database"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program and database format versions",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "go-eix version %s (database format %d)\n", Version, database.FormatVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
