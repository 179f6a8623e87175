// Package verify runs the architecture conformance engine end to end:
// discovery, classification, extraction, rule evaluation, aggregation.
// The engine is a pure batch transform; per-file evaluation is independent
// and runs on a bounded worker pool, with results re-sorted afterward so
// output is deterministic.
package verify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/scan"
)

// CExtensions are the default extensions for the textual-include binding.
var CExtensions = []string{".c", ".h", ".cpp", ".hpp"}

// OOPExtensions are the default extensions for the identifier-reference
// binding.
var OOPExtensions = []string{".vb", ".cs"}

// Options configures a verification run.
type Options struct {
	Root       string
	Extensions []string // defaulted per binding when empty
	Excludes   []string // doublestar patterns relative to Root
	Workers    int      // 0 = GOMAXPROCS
	Logger     *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Result is the aggregate outcome of a run. Findings are deduplicated and
// sorted; running twice on an unchanged tree yields identical results.
type Result struct {
	Root         string
	FilesScanned int
	// LayerFiles counts feature-layer files (identifier binding only).
	LayerFiles int
	// NoSources marks a run that found nothing to verify. The include
	// binding treats this as a layout error; the identifier binding
	// reports a no-op.
	NoSources bool

	Findings     []finding.Finding
	ErrorCount   int
	WarningCount int
}

// Passed reports whether the run produced zero error-severity findings.
func (r *Result) Passed() bool { return r.ErrorCount == 0 }

// ExitCode maps the verdict to the process exit contract: 0 pass, 2 fail.
// The contract is identical across both bindings.
func (r *Result) ExitCode() int {
	if r.Passed() {
		return 0
	}
	return 2
}

// resolveRoot validates and absolutizes the scan root. A missing root is
// the only fatal condition of a run.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root folder not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root is not a directory: %s", abs)
	}
	return abs, nil
}

// forEachFile fans files out to a bounded worker pool, collecting each
// worker's findings under a mutex. Evaluation order is irrelevant because
// the aggregate is re-sorted.
func forEachFile(files []scan.File, workers int, set *finding.Set, fn func(scan.File) []finding.Finding) {
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(f scan.File) {
			defer wg.Done()
			defer func() { <-sem }()
			fs := fn(f)
			if len(fs) == 0 {
				return
			}
			mu.Lock()
			set.Add(fs...)
			mu.Unlock()
		}(f)
	}
	wg.Wait()
}

func finalize(res *Result, set *finding.Set) *Result {
	res.Findings = set.Sorted()
	res.ErrorCount, res.WarningCount = finding.Count(res.Findings)
	return res
}
