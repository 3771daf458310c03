package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rscanner/internal/catalog"
	"rscanner/internal/finding"
	"rscanner/internal/util"
)

var checklistCommand = &cobra.Command{
	Use:   "checklist",
	Short: "generate a security checklist for a specific platform",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return checklistExec(cmd)
	},
}

var (
	ChecklistPlatform string
	ChecklistOutput   string
)

func init() {
	checklistCommand.Flags().StringVarP(&ChecklistPlatform, "platform", "p", "all", "platform to generate the checklist for (solana, near, cosmwasm, substrate, or all)")
	checklistCommand.Flags().StringVarP(&ChecklistOutput, "output", "o", "", "output file path (default stdout)")
}

func checklistExec(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating security checklist for %s...\n", ChecklistPlatform)

	content := catalog.Checklist(finding.ParsePlatform(ChecklistPlatform))
	if ChecklistOutput == "" {
		fmt.Fprintf(out, "\n%s", content)
		return nil
	}
	if err := util.WriteFile(ChecklistOutput, []byte(content)); err != nil {
		return finding.NewIOError(ChecklistOutput, err)
	}
	fmt.Fprintf(out, "Checklist written to %s\n", ChecklistOutput)
	return nil
}
