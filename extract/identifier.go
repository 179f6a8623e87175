package extract

import (
	"regexp"
	"strings"
)

// LineRule is a denylist entry for the identifier-reference binding:
// a pattern that must not appear in domain-layer sources. Except, when
// set, discards a match whose trailing text satisfies it; this stands in
// for negative lookahead, which RE2 does not support.
type LineRule struct {
	ID      string
	Pattern *regexp.Regexp
	Except  *regexp.Regexp
	Message string
}

// Forbidden namespace imports for Idea-role files, per sub-dialect.
// Imports are matched case-insensitively at line start.
var (
	vbImportRules = []LineRule{
		{"ida-no-winforms", regexp.MustCompile(`(?i)^\s*Imports\s+System\.Windows\.Forms`), nil, "Imports System.Windows.Forms (WinForms UI layer)"},
		// System.Drawing.Color is value-type plumbing, not the Graphics
		// API, so it stays importable from Idea code.
		{"ida-no-drawing", regexp.MustCompile(`(?i)^\s*Imports\s+System\.Drawing`), regexp.MustCompile(`(?i)^\s*\.\s*Color\b`), "Imports System.Drawing (Graphics API)"},
		{"ida-no-interop", regexp.MustCompile(`(?i)^\s*Imports\s+Microsoft\.Office\.Interop`), nil, "Imports Microsoft.Office.Interop (COM Interop)"},
		{"ida-no-serialport", regexp.MustCompile(`(?i)^\s*Imports\s+System\.IO\.Ports`), nil, "Imports System.IO.Ports (SerialPort/hardware)"},
		{"ida-no-fileio", regexp.MustCompile(`(?i)^\s*Imports\s+System\.IO\b`), nil, "Imports System.IO (File I/O)"},
	}

	csImportRules = []LineRule{
		{"ida-no-winforms", regexp.MustCompile(`(?i)^\s*using\s+System\.Windows\.Forms\s*;`), nil, "using System.Windows.Forms (WinForms UI layer)"},
		{"ida-no-drawing", regexp.MustCompile(`(?i)^\s*using\s+System\.Drawing\s*;`), nil, "using System.Drawing (Graphics API)"},
		{"ida-no-interop", regexp.MustCompile(`(?i)^\s*using\s+Microsoft\.Office\.Interop`), nil, "using Microsoft.Office.Interop (COM Interop)"},
		{"ida-no-serialport", regexp.MustCompile(`(?i)^\s*using\s+System\.IO\.Ports\s*;`), nil, "using System.IO.Ports (SerialPort/hardware)"},
		{"ida-no-fileio", regexp.MustCompile(`(?i)^\s*using\s+System\.IO\s*;`), nil, "using System.IO (File I/O)"},
	}

	// Forbidden API call fragments, language-neutral and case-sensitive:
	// blocking UI, UI thread marshalling, blocking delay, process spawn.
	callRules = []LineRule{
		{"ida-no-messagebox", regexp.MustCompile(`\bMessageBox\.Show\s*\(`), nil, "MessageBox.Show (UI feedback must stay in prx_/poi_)"},
		{"ida-no-invoke", regexp.MustCompile(`\.(?:Begin)?Invoke\s*\(`), nil, ".Invoke / .BeginInvoke (UI thread marshal)"},
		{"ida-no-threadsleep", regexp.MustCompile(`\bThread\.Sleep\s*\(`), nil, "Thread.Sleep (blocking delay; use timing abstraction)"},
		{"ida-no-processstart", regexp.MustCompile(`\bProcess\.Start\s*\(`), nil, "Process.Start (OS shell call)"},
	}
)

// ImportRulesFor returns the import denylist for a source extension.
func ImportRulesFor(ext string) []LineRule {
	if strings.EqualFold(ext, ".vb") {
		return vbImportRules
	}
	return csImportRules
}

// CallRules returns the forbidden API call denylist.
func CallRules() []LineRule {
	return callRules
}

// RuleHit records a denylist pattern occurrence.
type RuleHit struct {
	Line int
	Rule LineRule
}

// MatchLineRules scans lines against a denylist and returns every hit.
func MatchLineRules(lines []string, rules []LineRule) []RuleHit {
	var hits []RuleHit
	for i, line := range lines {
		for _, r := range rules {
			loc := r.Pattern.FindStringIndex(line)
			if loc == nil {
				continue
			}
			if r.Except != nil && r.Except.MatchString(line[loc[1]:]) {
				continue
			}
			hits = append(hits, RuleHit{Line: i + 1, Rule: r})
		}
	}
	return hits
}

// SymbolPattern builds a whole-word matcher for a class name. Word-boundary
// matching is the chosen behavior for bare identifier detection; requiring
// a qualifying namespace would drop unqualified same-file references.
func SymbolPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// SymbolRefs returns the 1-based line numbers where pattern occurs,
// skipping lines that open with a comment marker.
func SymbolRefs(lines []string, pattern *regexp.Regexp) []int {
	var out []int
	for i, line := range lines {
		if IsCommentLine(line) {
			continue
		}
		if pattern.MatchString(line) {
			out = append(out, i+1)
		}
	}
	return out
}
