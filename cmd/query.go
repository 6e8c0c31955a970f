package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"go-eix/database"
	"go-eix/pkg"
	"go-eix/service"
)

var (
	queryDatabase     string
	searchDescription bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all package names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		names, err := svc.List(service.ListOptions{Database: queryDatabase})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search PATTERN",
	Short: "Search packages by regular expression",
	Long: `Search matches PATTERN against package names (and "category/name").
With --description, descriptions are searched too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		result, err := svc.Search(service.SearchOptions{
			Database:    queryDatabase,
			Pattern:     args[0],
			Description: searchDescription,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range result.Packages {
			printPackage(out, result.Header, p)
		}
		fmt.Fprintf(out, "\nFound %d matches.\n", len(result.Packages))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().StringVar(&queryDatabase, "db", "", "Database to read (default: database_path)")
		rootCmd.AddCommand(c)
	}
	searchCmd.Flags().BoolVarP(&searchDescription, "description", "S", false, "Also search descriptions")
}

// printPackage writes one search hit in the classic eix layout.
func printPackage(w io.Writer, hdr *database.Header, p *pkg.Package) {
	fmt.Fprintf(w, "* %s\n", p.FullName())

	var versions []string
	for _, v := range p.Versions {
		s := v.String()
		if v.Slot != "" {
			s += "(" + pkg.DisplaySlot(v.Slot) + ")"
		}
		if v.Overlay != 0 {
			s += "[" + hdr.OverlayLabel(v.Overlay) + "]"
		}
		versions = append(versions, s)
	}
	fmt.Fprintf(w, "     Available versions:  %s\n", strings.Join(versions, " "))
	if p.Homepage != "" {
		fmt.Fprintf(w, "     Homepage:            %s\n", p.Homepage)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "     Description:         %s\n", p.Description)
	}
	if p.License != "" {
		fmt.Fprintf(w, "     License:             %s\n", p.License)
	}
	fmt.Fprintln(w)
}
