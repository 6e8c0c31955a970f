package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"go-eix/service"
	"go-eix/util"
)

var (
	importRepo   string
	importMethod string
	importForce  bool
	runsLimit    int
	resetYes     bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the metadata cache database",
}

var cacheImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Snapshot a repository cache into the cache database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		run, err := svc.ImportCache(service.ImportOptions{
			Repository: importRepo,
			Method:     importMethod,
			Force:      importForce,
		})
		if run != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %s, %d categories imported, %d unchanged, %d failed, %d records\n",
				run.ID[:8], run.Status, run.Stats.Categories, run.Stats.Unchanged, run.Stats.Failed, run.Stats.Records)
		}
		return err
	},
}

var cacheRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List import runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		runs, err := svc.Runs(runsLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No import runs recorded.")
			return nil
		}
		for _, r := range runs {
			duration := "-"
			if !r.EndTime.IsZero() {
				duration = r.EndTime.Sub(r.StartTime).Round(time.Millisecond).String()
			}
			fmt.Fprintf(out, "%s  %s  %-8s %-12s %6d records  %8s  %s\n",
				r.ID[:8], r.StartTime.Format(time.DateTime), r.Status, r.Backend,
				r.Stats.Records, duration, r.Repository)
		}
		return nil
	},
}

var cacheResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the cache database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if !svc.CacheDBExists() {
			fmt.Fprintln(cmd.OutOrStdout(), "No cache database to remove.")
			return nil
		}
		if !resetYes && !util.AskYN(fmt.Sprintf("Remove %s?", cfg.CacheDB), false) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if _, err := svc.ResetCache(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", cfg.CacheDB)
		return nil
	},
}

func init() {
	cacheImportCmd.Flags().StringVar(&importRepo, "repo", "", "Repository to import (default: portdir)")
	cacheImportCmd.Flags().StringVar(&importMethod, "method", "", "Cache method to read (default: cache_method)")
	cacheImportCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Re-import unchanged categories")
	cacheRunsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Show at most this many runs (0 = all)")
	cacheResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	cacheCmd.AddCommand(cacheImportCmd, cacheRunsCmd, cacheResetCmd)
	rootCmd.AddCommand(cacheCmd)
}
