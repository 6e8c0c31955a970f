package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-eix/service"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create directories and a default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Initializing go-eix...")

		result, err := svc.Initialize(service.InitOptions{Force: initForce})
		if err != nil {
			return err
		}

		for _, dir := range result.DirsCreated {
			fmt.Fprintf(out, "  ✓ %s\n", dir)
		}
		if result.ConfigWritten {
			fmt.Fprintf(out, "  ✓ Configuration: %s\n", result.ConfigPath)
		} else {
			fmt.Fprintf(out, "  - Configuration kept: %s (use --force to overwrite)\n", result.ConfigPath)
		}
		if result.Categories > 0 {
			fmt.Fprintf(out, "  ✓ Portdir: %s (%d categories)\n", cfg.PortDir, result.Categories)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  ⚠  %s\n", w)
		}

		fmt.Fprintln(out, "\n✓ Initialization complete! Next: go-eix update")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}
