package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-eix/service"
)

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Compare two databases",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		result, err := svc.Diff(args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, e := range result.Entries {
			switch e.Kind {
			case service.DiffAdded:
				fmt.Fprintf(out, "[N] %s (%s)\n", e.Name, e.New)
			case service.DiffRemoved:
				fmt.Fprintf(out, "[D] %s (%s)\n", e.Name, e.Old)
			case service.DiffUpgraded:
				fmt.Fprintf(out, "[U] %s (%s -> %s)\n", e.Name, e.Old, e.New)
			case service.DiffDowngraded:
				fmt.Fprintf(out, "[d] %s (%s -> %s)\n", e.Name, e.Old, e.New)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
