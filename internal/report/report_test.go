package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rscanner/internal/finding"
)

func sample() []finding.Finding {
	return []finding.Finding{
		{Vulnerability: "Integer Overflow", File: "src/lib.rs", Line: 4, Code: "a\nx += y;\nb", Description: "overflow", Severity: finding.Medium},
		{Vulnerability: "Reentrancy Vulnerability", File: "src/lib.rs", Line: 2, Code: "invoke(x);", Description: "reentrancy", Severity: finding.High},
		{Vulnerability: "Custom", File: "src/a.rs", Line: 9, Code: "c", Description: "custom", Severity: finding.Low},
		{Vulnerability: "Missing Access Control", File: "src/b.rs", Line: 1, Code: "pub fn f() {", Description: "access", Severity: finding.High},
	}
}

func Test_RenderEmpty(t *testing.T) {
	for _, detailed := range []bool{false, true} {
		assert.Equal(t, "No vulnerabilities found!\n", Render(nil, detailed, Plain))
	}
}

func Test_RenderSummary(t *testing.T) {
	out := Render(sample(), false, Plain)

	want := "\nSummary:\n" +
		"4 potential vulnerabilities found:\n" +
		"  HIGH : 2\n" +
		"  MEDIUM : 1\n" +
		"  LOW : 1\n" +
		"\nFindings:\n"
	assert.True(t, strings.HasPrefix(out, want), out)
	assert.NotContains(t, out, "INFO")
	assert.NotContains(t, out, "Code:")
}

func Test_RenderGroupingIsStable(t *testing.T) {
	out := Render(sample(), false, Plain)

	order := []string{
		"[1] Reentrancy Vulnerability (HIGH)",
		"[2] Missing Access Control (HIGH)",
		"[1] Integer Overflow (MEDIUM)",
		"[1] Custom (LOW)",
	}
	last := -1
	for _, header := range order {
		idx := strings.Index(out, header)
		require.NotEqual(t, -1, idx, header)
		assert.Greater(t, idx, last, header)
		last = idx
	}
	assert.Contains(t, out, "\n[1] Reentrancy Vulnerability (HIGH)\nFile: src/lib.rs\nLine: 2\nDescription: reentrancy\n")
}

func Test_RenderDetailed(t *testing.T) {
	out := Render(sample()[:1], true, Plain)
	assert.Equal(t, "\nSummary:\n"+
		"1 potential vulnerabilities found:\n"+
		"  MEDIUM : 1\n"+
		"\nFindings:\n"+
		"\n[1] Integer Overflow (MEDIUM)\n"+
		"File: src/lib.rs\n"+
		"Line: 4\n"+
		"Description: overflow\n"+
		"\nCode:\na\nx += y;\nb\n", out)
}

func Test_Counts(t *testing.T) {
	counts := Counts(sample())
	assert.Equal(t, []SeverityCount{
		{finding.High, 2},
		{finding.Medium, 1},
		{finding.Low, 1},
	}, counts)
	assert.Empty(t, Counts(nil))
}

func Test_ParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"md", FormatMarkdown, false},
		{"sarif", FormatSARIF, false},
		{"github", FormatGHA, false},
		{"gha", FormatGHA, false},
		{"xml", FormatText, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func Test_ExportJSON(t *testing.T) {
	out, err := ExportJSON(sample())
	require.NoError(t, err)

	var decoded struct {
		Total    int            `json:"total"`
		Summary  map[string]int `json:"summary"`
		Findings []struct {
			Vulnerability string `json:"vulnerability"`
			Severity      string `json:"severity"`
			Line          int    `json:"line"`
			Fingerprint   string `json:"fingerprint"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 4, decoded.Total)
	assert.Equal(t, map[string]int{"HIGH": 2, "MEDIUM": 1, "LOW": 1}, decoded.Summary)
	require.Len(t, decoded.Findings, 4)
	assert.Equal(t, "Integer Overflow", decoded.Findings[0].Vulnerability)
	assert.Equal(t, "MEDIUM", decoded.Findings[0].Severity)
	assert.Equal(t, sample()[0].Fingerprint(), decoded.Findings[0].Fingerprint)

	out, err = ExportJSON(nil)
	require.NoError(t, err)
	assert.Contains(t, out, `"findings": []`)
}

func Test_ExportSARIF(t *testing.T) {
	out, err := ExportSARIF(sample(), "v1.2.3")
	require.NoError(t, err)

	var log sarifLog
	require.NoError(t, json.Unmarshal([]byte(out), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	assert.Equal(t, "rscanner", run.Tool.Driver.Name)
	assert.Equal(t, "v1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 4)
	assert.Equal(t, "integer-overflow", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "missing-access-control", run.Tool.Driver.Rules[3].ID)

	require.Len(t, run.Results, 4)
	assert.Equal(t, "warning", run.Results[0].Level)
	assert.Equal(t, "error", run.Results[1].Level)
	assert.Equal(t, "note", run.Results[2].Level)
	assert.Equal(t, 3, run.Results[3].RuleIndex)
	assert.Equal(t, 4, run.Results[0].Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "src/lib.rs", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func Test_ExportGitHubActions(t *testing.T) {
	out := ExportGitHubActions([]finding.Finding{
		{Vulnerability: "Integer Overflow", File: "src/a,b.rs", Line: 3, Description: "50% chance\nof overflow", Severity: finding.Medium},
		{Vulnerability: "Reentrancy", File: "lib.rs", Line: 1, Description: "r", Severity: finding.High},
		{Vulnerability: "Note", File: "lib.rs", Line: 2, Description: "n", Severity: finding.Info},
	})
	assert.Equal(t,
		"::warning file=src/a%2Cb.rs,line=3,title=Integer Overflow::50%25 chance%0Aof overflow\n"+
			"::error file=lib.rs,line=1,title=Reentrancy::r\n"+
			"::notice file=lib.rs,line=2,title=Note::n\n", out)
}

func Test_ExportMarkdown(t *testing.T) {
	assert.Equal(t, "# Vulnerability Scan Report\n\nNo vulnerabilities found!\n", ExportMarkdown(nil, false))

	out := ExportMarkdown(sample(), true)
	assert.Contains(t, out, "| HIGH | 2 |")
	assert.Contains(t, out, "## MEDIUM")
	assert.NotContains(t, out, "## INFO")
	assert.Contains(t, out, "1. **Integer Overflow** `src/lib.rs:4`")
	assert.Contains(t, out, "   ```rust\n   a\n   x += y;\n   b\n   ```")
}

func Test_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, Options{}))
	assert.Equal(t, "No vulnerabilities found!\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, sample(), Options{Format: FormatGHA}))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	assert.Error(t, Write(&buf, nil, Options{Format: "xml"}))
}

func Test_AutoStylerNoColor(t *testing.T) {
	assert.Equal(t, Plain, AutoStyler(nil, true))
}
