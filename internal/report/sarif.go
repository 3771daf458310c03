package report

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"rscanner/internal/finding"
)

// SARIF v2.1.0, the subset read by GitHub code scanning.

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"
	toolName     = "rscanner"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	FullDescription  sarifMessage       `json:"fullDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLocation   `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int           `json:"startLine"`
	Snippet   *sarifMessage `json:"snippet,omitempty"`
}

// ExportSARIF returns a single-run SARIF log with one rule per vulnerability name.
func ExportSARIF(findings []finding.Finding, version string) (string, error) {
	data, err := json.MarshalIndent(buildSARIF(findings, version), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "MarshalIndent")
	}
	return string(data) + "\n", nil
}

func buildSARIF(findings []finding.Finding, version string) sarifLog {
	var (
		ruleIndex = map[string]int{}
		rules     []sarifRule
		results   = make([]sarifResult, 0, len(findings))
	)
	for _, f := range findings {
		id := ruleID(f.Vulnerability)
		index, seen := ruleIndex[id]
		if !seen {
			index = len(rules)
			ruleIndex[id] = index
			rules = append(rules, sarifRule{
				ID:               id,
				Name:             f.Vulnerability,
				ShortDescription: sarifMessage{Text: f.Vulnerability},
				FullDescription:  sarifMessage{Text: f.Description},
				DefaultConfig:    sarifDefaultConfig{Level: sarifLevel(f.Severity)},
			})
		}

		region := sarifRegion{StartLine: f.Line}
		if f.Code != "" {
			region.Snippet = &sarifMessage{Text: f.Code}
		}
		results = append(results, sarifResult{
			RuleID:    id,
			RuleIndex: index,
			Level:     sarifLevel(f.Severity),
			Message:   sarifMessage{Text: f.Description},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: sarifURI(f.File)},
					Region:           region,
				},
			}},
			PartialFingerprints: map[string]string{
				"rscanner/v1": f.Fingerprint(),
			},
		})
	}

	return sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    toolName,
				Version: version,
				Rules:   rules,
			}},
			Results: results,
		}},
	}
}

func sarifLevel(s finding.Severity) string {
	switch s {
	case finding.High:
		return "error"
	case finding.Medium:
		return "warning"
	default:
		return "note"
	}
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// ruleID turns "Missing Access Control" into "missing-access-control".
func ruleID(name string) string {
	id := strings.Trim(nonWord.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if id == "" {
		return "finding"
	}
	return id
}

func sarifURI(path string) string {
	return strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "./")
}
