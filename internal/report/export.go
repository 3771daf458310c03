package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"rscanner/internal/finding"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatSARIF    Format = "sarif"
	FormatGHA      Format = "gha"
)

var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatSARIF, FormatGHA}

func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "text":
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case "github", "github-actions":
		return FormatGHA, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return FormatText, errors.Errorf("unknown output format %q", s)
}

// Options controls Write.
type Options struct {
	Format   Format
	Detailed bool
	Styler   Styler
	// Version is reported as the tool version in SARIF output.
	Version string
}

// Write renders findings in the requested format to w.
func Write(w io.Writer, findings []finding.Finding, opts Options) error {
	var (
		out string
		err error
	)
	switch opts.Format {
	case FormatText, "":
		out = Render(findings, opts.Detailed, opts.Styler)
	case FormatJSON:
		out, err = ExportJSON(findings)
	case FormatMarkdown:
		out = ExportMarkdown(findings, opts.Detailed)
	case FormatSARIF:
		out, err = ExportSARIF(findings, opts.Version)
	case FormatGHA:
		out = ExportGitHubActions(findings)
	default:
		return errors.Errorf("unknown output format %q", opts.Format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return errors.Wrap(err, "WriteString")
}

type jsonFinding struct {
	finding.Finding
	Fingerprint string `json:"fingerprint"`
}

type jsonReport struct {
	Total    int            `json:"total"`
	Summary  map[string]int `json:"summary"`
	Findings []jsonFinding  `json:"findings"`
}

// ExportJSON returns the findings with their summary as indented JSON.
func ExportJSON(findings []finding.Finding) (string, error) {
	r := jsonReport{
		Total:    len(findings),
		Summary:  make(map[string]int),
		Findings: make([]jsonFinding, 0, len(findings)),
	}
	for _, c := range Counts(findings) {
		r.Summary[c.Severity.String()] = c.Count
	}
	for _, f := range findings {
		r.Findings = append(r.Findings, jsonFinding{Finding: f, Fingerprint: f.Fingerprint()})
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "MarshalIndent")
	}
	return string(data) + "\n", nil
}

// ExportMarkdown returns a Markdown report grouped by severity.
func ExportMarkdown(findings []finding.Finding, detailed bool) string {
	var b strings.Builder
	b.WriteString("# Vulnerability Scan Report\n\n")

	if len(findings) == 0 {
		b.WriteString(NoFindings + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d potential vulnerabilities found.\n\n", len(findings))
	b.WriteString("| Severity | Count |\n|---|---|\n")
	for _, c := range Counts(findings) {
		fmt.Fprintf(&b, "| %s | %d |\n", c.Severity, c.Count)
	}

	groups := Group(findings)
	for _, sev := range finding.Severities {
		if len(groups[sev]) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", sev)
		for i, f := range groups[sev] {
			fmt.Fprintf(&b, "\n%d. **%s** `%s:%d`  \n   %s\n", i+1, f.Vulnerability, f.File, f.Line, f.Description)
			if detailed {
				fmt.Fprintf(&b, "\n   ```rust\n%s\n   ```\n", indent(f.Code, "   "))
			}
		}
	}
	return b.String()
}

// ExportGitHubActions returns one workflow annotation per finding.
// https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions
func ExportGitHubActions(findings []finding.Finding) string {
	var b strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&b, "::%s file=%s,line=%d,title=%s::%s\n",
			ghaLevel(f.Severity),
			escapeGHAProperty(f.File),
			f.Line,
			escapeGHAProperty(f.Vulnerability),
			escapeGHAData(f.Description))
	}
	return b.String()
}

func ghaLevel(s finding.Severity) string {
	switch s {
	case finding.High:
		return "error"
	case finding.Medium:
		return "warning"
	default:
		return "notice"
	}
}

func escapeGHAData(msg string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(msg)
}

func escapeGHAProperty(msg string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(msg)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
