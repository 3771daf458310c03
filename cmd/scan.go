package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rscanner/internal/config"
	"rscanner/internal/finding"
	"rscanner/internal/pattern"
	"rscanner/internal/report"
	"rscanner/internal/scanner"
	"rscanner/internal/walker"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "scan a rust smart contract or project for potential vulnerabilities",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := scanOptionsFrom(cmd)
		if err != nil {
			return err
		}
		return scanExec(cmd, opts)
	},
}

var (
	ScanPath           string
	ScanPlatform       string
	ScanDetailed       bool
	ScanFormat         string
	ScanJobs           int
	ScanKeepGoing      bool
	ScanNoColor        bool
	ScanStrictPlatform bool
	ScanPatternsFile   string
)

func init() {
	scanCommand.Flags().StringVarP(&ScanPath, "path", "p", "", "path to the smart contract or project to scan")
	scanCommand.Flags().StringVar(&ScanPlatform, "platform", "all", "platform to target (solana, near, cosmwasm, substrate, or all)")
	scanCommand.Flags().BoolVarP(&ScanDetailed, "detailed", "d", false, "include the code around each finding")
	scanCommand.Flags().StringVarP(&ScanFormat, "format", "f", "text", "output format (text, json, markdown, sarif, gha)")
	scanCommand.Flags().IntVarP(&ScanJobs, "jobs", "j", 1, "number of files scanned concurrently")
	scanCommand.Flags().BoolVar(&ScanKeepGoing, "keep-going", false, "scan the remaining files after a read error, then fail")
	scanCommand.Flags().BoolVar(&ScanNoColor, "no-color", false, "disable colored output")
	scanCommand.Flags().BoolVar(&ScanStrictPlatform, "strict-platform", false, "reject unknown --platform values instead of scanning for all platforms")
	scanCommand.Flags().StringVar(&ScanPatternsFile, "patterns", "", "YAML file with additional patterns")
	_ = scanCommand.MarkFlagRequired("path")
}

type scanOptions struct {
	path         string
	platform     finding.Platform
	format       report.Format
	detailed     bool
	noColor      bool
	jobs         int
	keepGoing    bool
	patternsFile string
	extensions   []string
	excludeDirs  []string
}

// scanOptionsFrom merges the config files with the flags; flags set on the
// command line win.
func scanOptionsFrom(cmd *cobra.Command) (*scanOptions, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()

	platformToken := ScanPlatform
	if !flags.Changed("platform") && cfg.Platform != "" {
		platformToken = cfg.Platform
	}
	strict := ScanStrictPlatform
	if !flags.Changed("strict-platform") {
		strict = config.Bool(cfg.StrictPlatform, strict)
	}
	platform, err := finding.ParsePlatformStrict(platformToken)
	if err != nil {
		if strict {
			return nil, err
		}
		log.Warnf("unknown platform %q, scanning for all platforms", platformToken)
		platform = finding.ParsePlatform(platformToken)
	}

	formatName := ScanFormat
	if !flags.Changed("format") && cfg.Format != "" {
		formatName = cfg.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	opts := &scanOptions{
		path:         ScanPath,
		platform:     platform,
		format:       format,
		detailed:     ScanDetailed,
		noColor:      ScanNoColor,
		jobs:         ScanJobs,
		keepGoing:    ScanKeepGoing,
		patternsFile: ScanPatternsFile,
		extensions:   config.NormalizeExtensions(cfg.Extensions),
		excludeDirs:  cfg.ExcludeDirs,
	}
	if !flags.Changed("detailed") {
		opts.detailed = config.Bool(cfg.Detailed, opts.detailed)
	}
	if !flags.Changed("no-color") {
		opts.noColor = config.Bool(cfg.NoColor, opts.noColor)
	}
	if !flags.Changed("jobs") {
		opts.jobs = config.Int(cfg.Jobs, opts.jobs)
	}
	if !flags.Changed("keep-going") {
		opts.keepGoing = config.Bool(cfg.KeepGoing, opts.keepGoing)
	}
	if !flags.Changed("patterns") && cfg.PatternsFile != "" {
		opts.patternsFile = cfg.PatternsFile
	}
	return opts, nil
}

func newAnalyzer(opts *scanOptions) (*scanner.Analyzer, error) {
	registry := pattern.NewDefaultRegistry()
	if opts.patternsFile != "" {
		extra, err := pattern.LoadFile(opts.patternsFile)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded %d patterns from %s", len(extra), opts.patternsFile)
		registry.Add(extra...)
	}

	w := walker.New()
	if len(opts.extensions) > 0 {
		w.Extensions = opts.extensions
	}
	// configured names add to the defaults; target stays excluded
	w.ExcludeDirs = append(w.ExcludeDirs, opts.excludeDirs...)
	return scanner.NewAnalyzer(registry, w, scanner.Options{
		Jobs:      opts.jobs,
		KeepGoing: opts.keepGoing,
	}), nil
}

func scanExec(cmd *cobra.Command, opts *scanOptions) error {
	analyzer, err := newAnalyzer(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	text := opts.format == report.FormatText
	if text {
		fmt.Fprintf(out, "Scanning %s for vulnerabilities...\n", opts.path)
	}

	findings, scanErr := analyzer.Run(cmd.Context(), opts.path, opts.platform)
	var partial *scanner.ScanError
	if scanErr != nil && !errors.As(scanErr, &partial) {
		return scanErr
	}

	err = report.Write(out, findings, report.Options{
		Format:   opts.format,
		Detailed: opts.detailed,
		Styler:   styler(out, opts.noColor),
		Version:  version(),
	})
	if err != nil {
		return err
	}
	if text {
		fmt.Fprintf(out, "\nScan complete! Found %d potential vulnerabilities.\n", len(findings))
	}
	return scanErr
}

func styler(out io.Writer, noColor bool) report.Styler {
	if f, ok := out.(*os.File); ok {
		return report.AutoStyler(f, noColor)
	}
	return report.Plain
}
