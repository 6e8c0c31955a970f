package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"go-eix/util"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and cache status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		st, err := svc.Status()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Database ===")
		fmt.Fprintf(out, "Path:          %s\n", st.DatabasePath)
		if !st.DatabaseExists {
			fmt.Fprintln(out, "Not built yet. Run: go-eix update")
		} else {
			fmt.Fprintf(out, "Size:          %s\n", util.FormatBytes(st.DatabaseSize))
			fmt.Fprintf(out, "Format:        %d\n", st.FormatVersion)
			fmt.Fprintf(out, "Categories:    %d\n", st.Categories)
			fmt.Fprintf(out, "Packages:      %d\n", st.Packages)
			for i, o := range st.Overlays {
				fmt.Fprintf(out, "Overlay [%d]:   %s (%s)\n", i, o.Path, o.Label)
			}
		}

		fmt.Fprintln(out, "\n=== Cache Database ===")
		fmt.Fprintf(out, "Path:          %s\n", st.CacheDBPath)
		if !st.CacheDBExists {
			fmt.Fprintln(out, "Not created yet. Run: go-eix cache import")
			return nil
		}
		for _, r := range st.Repositories {
			fmt.Fprintf(out, "Repository:    %s (%d records)\n", r.Path, r.Records)
		}
		if st.LastRun != nil {
			fmt.Fprintf(out, "Last import:   %s (%s, %s)\n",
				st.LastRun.StartTime.Format(time.DateTime), st.LastRun.Status, st.LastRun.ID[:8])
		}
		if st.ActiveRun != nil {
			fmt.Fprintf(out, "⚠  Unfinished:  %s started %s\n",
				st.ActiveRun.ID[:8], st.ActiveRun.StartTime.Format(time.DateTime))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
