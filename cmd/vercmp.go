package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vercmpTilde bool

var vercmpCmd = &cobra.Command{
	Use:   "vercmp A B",
	Short: "Compare two versions, printing <, = or >",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		c, err := svc.CompareVersions(args[0], args[1], vercmpTilde)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), [...]string{"<", "=", ">"}[c+1])
		return nil
	},
}

func init() {
	vercmpCmd.Flags().BoolVar(&vercmpTilde, "tilde", false, "Ignore revisions")
	rootCmd.AddCommand(vercmpCmd)
}
