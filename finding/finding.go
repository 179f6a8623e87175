// Package finding defines the conformance finding model shared by every
// gate stage: classifier, placement, dependency, spec hygiene.
package finding

import "sort"

// Severity distinguishes gate-blocking errors from advisory warnings.
type Severity string

// SeverityError blocks the gate; SeverityWarning never does.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single conformance result. Line is 0 for file-level findings.
type Finding struct {
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
}

// Set accumulates findings during a run. It is not safe for concurrent use;
// callers merging results from parallel workers must serialize Add calls.
type Set struct {
	findings []Finding
}

// Add appends findings to the set.
func (s *Set) Add(fs ...Finding) {
	s.findings = append(s.findings, fs...)
}

// Error records an error-severity finding.
func (s *Set) Error(file string, line int, rule, message string) {
	s.Add(Finding{Severity: SeverityError, File: file, Line: line, Rule: rule, Message: message})
}

// Warn records a warning-severity finding.
func (s *Set) Warn(file string, line int, rule, message string) {
	s.Add(Finding{Severity: SeverityWarning, File: file, Line: line, Rule: rule, Message: message})
}

// Len returns the number of raw (pre-dedup) findings.
func (s *Set) Len() int { return len(s.findings) }

// Sorted returns the findings deduplicated by (file, line, rule) and ordered
// by file, then line, then rule. Output is deterministic for a given input
// set regardless of insertion order.
func (s *Set) Sorted() []Finding {
	out := make([]Finding, len(s.findings))
	copy(out, s.findings)
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		if out[i].Rule != out[j].Rule {
			return out[i].Rule < out[j].Rule
		}
		return out[i].Message < out[j].Message
	})

	type key struct {
		file string
		line int
		rule string
	}
	seen := make(map[key]bool, len(out))
	unique := out[:0]
	for _, f := range out {
		k := key{f.File, f.Line, f.Rule}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, f)
	}
	return unique
}

// Count returns the number of errors and warnings in fs.
func Count(fs []Finding) (errors, warnings int) {
	for _, f := range fs {
		switch f.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Passed reports whether fs contains no error-severity findings.
// Warnings alone never fail the gate.
func Passed(fs []Finding) bool {
	errors, _ := Count(fs)
	return errors == 0
}
