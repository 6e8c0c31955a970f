package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"go-eix/service"
)

var cleanupRunsAge time.Duration

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove leftover temporary files and old import runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		result, err := svc.Cleanup(service.CleanupOptions{RunsOlderThan: cleanupRunsAge})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range result.FilesRemoved {
			fmt.Fprintf(out, "  ✓ Removed %s\n", f)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  ✗ %v\n", e)
		}
		if result.RunsDeleted > 0 {
			fmt.Fprintf(out, "  ✓ Deleted %d import runs\n", result.RunsDeleted)
		}
		if len(result.FilesRemoved) == 0 && len(result.Errors) == 0 && result.RunsDeleted == 0 {
			fmt.Fprintln(out, "Nothing to clean up.")
		}
		return nil
	},
}

func init() {
	cleanupCmd.Flags().DurationVar(&cleanupRunsAge, "runs-older-than", 0, "Delete finished import runs older than this (e.g. 720h)")
	rootCmd.AddCommand(cleanupCmd)
}
