package cmd

import (
	"github.com/spf13/cobra"

	"go-eix/service"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump [DATABASE]",
	Short: "Print the whole database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		doc, err := svc.Dump(path)
		if err != nil {
			return err
		}
		return doc.Encode(cmd.OutOrStdout(), dumpFormat)
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", service.FormatText, "Output format: text or yaml")
	rootCmd.AddCommand(dumpCmd)
}
