package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"rscanner/internal/finding"
)

// Styler decorates the parts of the text report.
type Styler interface {
	Bold(s string) string
	Path(s string) string
	Severity(s finding.Severity) string
}

type plain struct{}

// Plain emits no escape sequences.
var Plain Styler = plain{}

func (plain) Bold(s string) string { return s }
func (plain) Path(s string) string { return s }
func (plain) Severity(s finding.Severity) string { return s.String() }

var (
	styleBold   = lipgloss.NewStyle().Bold(true)
	stylePath   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleHigh   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleMedium = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleInfo   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

type colour struct{}

// Colour renders with lipgloss terminal styles.
var Colour Styler = colour{}

func (colour) Bold(s string) string { return styleBold.Render(s) }
func (colour) Path(s string) string { return stylePath.Render(s) }

func (colour) Severity(s finding.Severity) string {
	switch s {
	case finding.High:
		return styleHigh.Render(s.String())
	case finding.Medium:
		return styleMedium.Render(s.String())
	case finding.Low:
		return styleLow.Render(s.String())
	case finding.Info:
		return styleInfo.Render(s.String())
	}
	return s.String()
}

// AutoStyler picks Colour only when out is a terminal and colour is not disabled.
func AutoStyler(out *os.File, noColor bool) Styler {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return Plain
	}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return Colour
	}
	return Plain
}
