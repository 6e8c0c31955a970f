package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"go-eix/service"
	"go-eix/util"
)

var updateOutput string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the database from the repository caches",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateOutput, "output", "o", "", "Write the database to this path")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Update(service.UpdateOptions{Output: updateOutput})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, r := range result.Repos {
		fmt.Fprintf(out, "  [%d] %-12s %s (%s, %d records)\n", i, r.Label, r.Path, r.Method, r.Records)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  ⚠  %v\n", e)
	}
	if result.Rejected > 0 {
		fmt.Fprintf(out, "  ⚠  %d cache entries rejected (unparsable version)\n", result.Rejected)
	}
	fmt.Fprintf(out, "✓ %s: %d categories, %d packages, %d versions, %s in %s\n",
		result.Path, result.Categories, result.Packages, result.Versions,
		util.FormatBytes(result.Bytes), result.Duration.Round(time.Millisecond))
	return nil
}
