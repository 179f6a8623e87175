package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/verify"
)

// Render writes the human-readable verdict and finding list. A zero-error
// run prints an explicit PASSED line; a run that scanned nothing is a
// no-op notice, distinct from a pass.
func Render(w io.Writer, res *verify.Result) {
	if res.NoSources && res.Passed() {
		fmt.Fprintf(w, "archgate: no source files to verify under %s\n", res.Root)
		return
	}

	if res.Passed() {
		if res.WarningCount > 0 {
			fmt.Fprintf(w, "archgate: PASSED with warnings (%d file(s), %d warning(s))\n",
				res.FilesScanned, res.WarningCount)
		} else {
			fmt.Fprintf(w, "archgate: PASSED (%d file(s) verified, 0 violations)\n", res.FilesScanned)
		}
	} else {
		fmt.Fprintf(w, "archgate: FAILED (%d error(s), %d warning(s))\n",
			res.ErrorCount, res.WarningCount)
	}

	for _, f := range res.Findings {
		if f.Severity == finding.SeverityWarning {
			fmt.Fprintf(w, "  (advisory) %s:%d [%s] %s\n", displayPath(res.Root, f.File), f.Line, f.Rule, f.Message)
			continue
		}
		fmt.Fprintf(w, "  %s:%d [%s] %s\n", displayPath(res.Root, f.File), f.Line, f.Rule, f.Message)
	}
}

// displayPath renders a finding path relative to the scan root when the
// file sits below it.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || len(rel) >= 2 && rel[:2] == ".." {
		return path
	}
	return rel
}
