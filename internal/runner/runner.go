// Package runner executes the configured rule set over a batch of source
// files with bounded parallelism and deterministic reporting.
package runner

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/rules"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

// Exit statuses signaled by a run.
const (
	ExitOK     = 0
	ExitIssues = 1 // issues at or above the failure threshold
	ExitConfig = 2 // configuration or usage error, reported before analysis
)

// Options tune one run. The zero value is usable.
type Options struct {
	// Concurrency bounds the worker pool; <=0 means GOMAXPROCS.
	Concurrency int
	// FailThreshold is the lowest severity that fails the run.
	FailThreshold issue.Severity
}

// FileError records a file that was skipped, not a run failure.
type FileError struct {
	Path string
	Err  error
}

// Result aggregates one run's output.
type Result struct {
	Sink    *issue.Sink
	Edits   []issue.TextEdit // proposed fixes from all recorded issues
	Skipped []FileError
}

// ExitStatus maps the recorded issues onto the process exit contract.
func (r *Result) ExitStatus(opts Options) int {
	for _, i := range r.Sink.Issues() {
		if i.Severity >= opts.FailThreshold {
			return ExitIssues
		}
	}
	return ExitOK
}

// Run executes every configured rule against every file. Rule execution
// is embarrassingly parallel across files; ordering is restored at the
// sink. Cancellation is cooperative between files: the current file
// finishes, remaining files are abandoned. A file that cannot be read is
// reported and skipped, never fatal to the batch.
func Run(ctx context.Context, paths []string, configured []*rules.ConfiguredRule, opts Options) *Result {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	res := &Result{Sink: issue.NewSink()}
	var mu sync.Mutex // guards Edits and Skipped

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, path := range paths {
		path := path
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			found, err := checkFile(path, configured)
			if err != nil {
				mu.Lock()
				res.Skipped = append(res.Skipped, FileError{Path: path, Err: err})
				mu.Unlock()
				return nil
			}
			res.Sink.RecordAll(found)
			var edits []issue.TextEdit
			for _, i := range found {
				edits = append(edits, i.Edits...)
			}
			if len(edits) > 0 {
				mu.Lock()
				res.Edits = append(res.Edits, edits...)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Skipped, func(i, j int) bool { return res.Skipped[i].Path < res.Skipped[j].Path })
	return res
}

// checkFile runs every configured rule over one file and drops issues the
// file suppresses inline.
func checkFile(path string, configured []*rules.ConfiguredRule) ([]issue.Issue, error) {
	f, err := sourcefile.Load(path)
	if err != nil {
		return nil, err
	}
	var out []issue.Issue
	for _, cr := range configured {
		for _, i := range cr.Rule.Check(f, cr) {
			if f.Disabled(i.Line, i.RuleID) {
				continue
			}
			out = append(out, i)
		}
	}
	return out, nil
}
