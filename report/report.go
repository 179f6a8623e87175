// Package report renders verification results for people (console) and
// machines (structured JSON).
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/verify"
)

// Report is the structured record of one verification run.
type Report struct {
	RunID          string            `json:"runId"`
	GeneratedAtUTC string            `json:"generatedAtUtc"`
	RootPath       string            `json:"rootPath"`
	Binding        string            `json:"binding"`
	FilesScanned   int               `json:"filesScanned"`
	ErrorCount     int               `json:"errorCount"`
	WarningCount   int               `json:"warningCount"`
	GatePassed     bool              `json:"gatePassed"`
	Findings       []finding.Finding `json:"findings"`
}

// New builds a Report from a run result. binding names the source-ecosystem
// binding that produced it ("include" or "identifier").
func New(binding string, res *verify.Result) *Report {
	findings := res.Findings
	if findings == nil {
		findings = []finding.Finding{}
	}
	return &Report{
		RunID:          uuid.New().String(),
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		RootPath:       res.Root,
		Binding:        binding,
		FilesScanned:   res.FilesScanned,
		ErrorCount:     res.ErrorCount,
		WarningCount:   res.WarningCount,
		GatePassed:     res.Passed(),
		Findings:       findings,
	}
}

// Write marshals the report as indented JSON (UTF-8, no BOM), creating
// parent directories as needed.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
