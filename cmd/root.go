// Package cmd holds the go-eix command line, one cobra command per file.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-eix/config"
	"go-eix/service"
)

// Version is set at build time with -ldflags "-X go-eix/cmd.Version=..."
var Version = "dev"

var (
	configDir string
	profile   string
	debug     bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "go-eix",
	Short: "Index and search Portage package metadata",
	Long: `go-eix reads the metadata caches of a Portage tree and its overlays,
writes them into one compact database and answers queries from it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configDir, profile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if debug {
			cfg.Debug = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", "", "Config base directory (default "+config.DefaultConfigDir+")")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Profile to use")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Debug verbosity")
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newService creates the service for the loaded configuration. Callers
// close it.
func newService() (*service.Service, error) {
	return service.NewService(cfg)
}
