package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// set with -ldflags "-X main.BuildVersion=..."
var (
	BuildBranch  string
	BuildVersion string
	BuildTime    string
	Builder      string
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "show version",
	Long:  ``,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func version() string {
	if BuildVersion == "" {
		return "dev"
	}
	return BuildVersion
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%-16s %s\n", "BuildBranch", BuildBranch)
	fmt.Fprintf(w, "%-16s %s\n", "BuildVersion", version())
	fmt.Fprintf(w, "%-16s %s\n", "BuildTime", BuildTime)
	fmt.Fprintf(w, "%-16s %s\n", "Builder", Builder)
}
