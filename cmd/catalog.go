package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rscanner/internal/catalog"
)

var catalogCommand = &cobra.Command{
	Use:   "catalog [list|<type>]",
	Short: "describe the vulnerability classes of rust smart contracts",
	Long: `Without arguments prints an overview of every vulnerability class.
"list" prints the accepted type names; a type name prints its full entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return catalogExec(cmd, args)
	},
}

var CatalogDetailed bool

func init() {
	catalogCommand.Flags().BoolVarP(&CatalogDetailed, "detailed", "d", false, "include the vulnerable code example")
}

func catalogExec(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Rust Smart Contract Vulnerabilities Guide")
	fmt.Fprintln(out, "========================================")

	if len(args) == 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, catalog.RenderSummary())
		fmt.Fprintln(out, "Use 'rscanner catalog list' to see the type names.")
		return nil
	}
	if args[0] == "list" {
		fmt.Fprint(out, catalog.RenderList())
		return nil
	}
	kind, err := catalog.ParseKind(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(out, catalog.RenderEntry(kind.Entry(), CatalogDetailed))
	return nil
}
