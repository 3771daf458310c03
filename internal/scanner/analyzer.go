package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rscanner/internal/finding"
	"rscanner/internal/pattern"
	"rscanner/internal/walker"
)

type Options struct {
	// Jobs is the number of files scanned at once; values below 2 scan sequentially.
	Jobs int

	// KeepGoing scans on past unreadable files and directories and reports
	// every error at the end instead of stopping at the first.
	KeepGoing bool
}

// ScanError collects the per-file and per-directory errors of a KeepGoing scan.
type ScanError struct {
	Errs []error
}

func (e *ScanError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d path(s) could not be scanned: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the first error so errors.As finds the *finding.IOError.
func (e *ScanError) Unwrap() error {
	if len(e.Errs) == 0 {
		return nil
	}
	return e.Errs[0]
}

type Analyzer struct {
	registry *pattern.Registry
	walker   *walker.Walker
	options  Options
}

func NewAnalyzer(registry *pattern.Registry, w *walker.Walker, options Options) *Analyzer {
	if registry == nil {
		registry = pattern.NewDefaultRegistry()
	}
	if w == nil {
		w = walker.New()
	}
	return &Analyzer{
		registry: registry,
		walker:   w,
		options:  options,
	}
}

// Run walks root and scans every file found, returning the findings in
// traversal order. An unreadable directory counts as a failed entry at its
// place in the traversal, like an unreadable file. Without KeepGoing the
// earliest failure aborts the run; with it the findings of the readable
// files are returned together with a *ScanError.
func (a *Analyzer) Run(ctx context.Context, root string, target finding.Platform) ([]finding.Finding, error) {
	startTime := time.Now()

	entries := a.walker.Entries(root)
	patterns := a.registry.Applicable(target)
	log.Debugf("scanning %d entries with %d patterns for platform %s", len(entries), len(patterns), target)

	var (
		err     error
		results = make([][]finding.Finding, len(entries))
		errs    = make([]error, len(entries))
	)
	if a.options.Jobs > 1 && len(entries) > 1 {
		err = a.scanParallel(ctx, entries, patterns, target, results, errs)
	} else {
		err = a.scanSequential(ctx, entries, patterns, target, results, errs)
	}
	if err != nil {
		return nil, err
	}

	var (
		findings []finding.Finding
		failed   []error
	)
	for i := range entries {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		findings = append(findings, results[i]...)
	}
	log.Debugf("total findings: %d, scan time used: %.3fs", len(findings), time.Since(startTime).Seconds())
	if len(failed) > 0 {
		return findings, &ScanError{Errs: failed}
	}
	return findings, nil
}

// scanEntry scans one walk entry; a directory the walker could not read
// fails with its walk error.
func scanEntry(entry walker.Entry, patterns []*pattern.Pattern, target finding.Platform) ([]finding.Finding, error) {
	if entry.Err != nil {
		return nil, errors.Wrap(entry.Err, "Walk")
	}
	findings, err := ScanFile(entry.Path, patterns, target)
	if err != nil {
		return nil, errors.Wrap(err, "ScanFile")
	}
	return findings, nil
}

func (a *Analyzer) scanSequential(
	ctx context.Context,
	entries []walker.Entry,
	patterns []*pattern.Pattern,
	target finding.Platform,
	results [][]finding.Finding,
	errs []error) error {
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debugf("scanning %s", entry.Path)
		results[i], errs[i] = scanEntry(entry, patterns, target)
		if errs[i] != nil {
			if !a.options.KeepGoing {
				return errs[i]
			}
			log.Warnf("skipped %s: %v", entry.Path, errs[i])
		}
	}
	return nil
}

// scanParallel fills the same index slots as scanSequential, so the merged
// result does not depend on scheduling.
func (a *Analyzer) scanParallel(
	ctx context.Context,
	entries []walker.Entry,
	patterns []*pattern.Pattern,
	target finding.Platform,
	results [][]finding.Finding,
	errs []error) error {
	done := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.options.Jobs)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Debugf("scanning %s", entry.Path)
			results[i], errs[i] = scanEntry(entry, patterns, target)
			done[i] = true
			if errs[i] != nil {
				if !a.options.KeepGoing {
					return errs[i]
				}
				log.Warnf("skipped %s: %v", entry.Path, errs[i])
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.options.KeepGoing {
		return nil
	}
	// report the failure nearest the start of the traversal; entries before
	// it that were cancelled unscanned are checked first
	for i, err := range errs {
		if err != nil {
			return err
		}
		if !done[i] {
			if _, err := scanEntry(entries[i], patterns, target); err != nil {
				return err
			}
		}
	}
	return waitErr
}
