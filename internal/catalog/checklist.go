package catalog

import (
	"fmt"
	"strings"

	"rscanner/internal/finding"
)

// ChecklistTitle is the first heading of the checklist for p.
func ChecklistTitle(p finding.Platform) string {
	if p == finding.All {
		return "General Rust Smart Contract Security Checklist"
	}
	return p.Title() + "-Specific Security Checklist"
}

// Checklist renders a Markdown audit checklist from the entries affecting p.
// Detection methods become unchecked items; remediations are listed after them.
func Checklist(p finding.Platform) string {
	var selected []Entry
	for _, e := range entries {
		if e.Affects(p) {
			selected = append(selected, e)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ChecklistTitle(p))
	if p == finding.All {
		fmt.Fprintf(&b, "Covers %d vulnerability classes found in Rust smart contracts.\n", len(selected))
	} else {
		fmt.Fprintf(&b, "Covers %d vulnerability classes that affect %s contracts.\n", len(selected), p.Title())
	}

	for i, e := range selected {
		fmt.Fprintf(&b, "\n## %d. %s\n\n%s\n\n", i+1, e.Name, e.Description)
		for _, m := range e.Detection {
			fmt.Fprintf(&b, "- [ ] %s\n", m)
		}
		b.WriteString("\nRemediation:\n\n")
		for _, r := range e.Remediation {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	return b.String()
}
