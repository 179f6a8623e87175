// Package gate sequences the verification stages and folds their outcomes
// into a combined report. Stages run in-process; each stage's pass/fail is
// independent and a failed stage never stops later stages.
package gate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/archgate/config"
	"github.com/c360studio/archgate/report"
	"github.com/c360studio/archgate/specdoc"
	"github.com/c360studio/archgate/verify"
)

// Stage statuses.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// StageResult records one gate stage.
type StageResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	ErrorCount int    `json:"errorCount"`
	Note       string `json:"note"`
	OutputPath string `json:"outputPath,omitempty"`
}

// Report is the combined multi-stage gate record.
type Report struct {
	RunID          string        `json:"runId"`
	GeneratedAtUTC string        `json:"generatedAtUtc"`
	RepoRoot       string        `json:"repoRoot"`
	Stages         []StageResult `json:"stages"`
	GatePassed     bool          `json:"gatePassed"`
}

// Runner executes the gate stages.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run executes the configured stages and writes the combined report.
// It returns the report; callers map GatePassed to the exit contract.
func (r *Runner) Run(repoRoot string) (*Report, error) {
	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	rep := &Report{
		RunID:          uuid.New().String(),
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		RepoRoot:       absRoot,
		GatePassed:     true,
	}

	r.runSpecStage(rep, absRoot)
	r.runCodeStage(rep, absRoot)
	r.runOOPStage(rep, absRoot)

	reportPath := r.cfg.Gate.ReportPath
	if !filepath.IsAbs(reportPath) {
		reportPath = filepath.Join(absRoot, reportPath)
	}
	if err := writeReport(rep, reportPath); err != nil {
		return nil, err
	}
	r.logger.Info("gate complete",
		slog.Bool("passed", rep.GatePassed),
		slog.String("report", reportPath))

	return rep, nil
}

func (r *Runner) addStage(rep *Report, s StageResult) {
	rep.Stages = append(rep.Stages, s)
	if s.Status == StatusFailed {
		rep.GatePassed = false
	}
}

func (r *Runner) runSpecStage(rep *Report, repoRoot string) {
	if r.cfg.Gate.SkipSpec {
		r.addStage(rep, StageResult{Name: "spec", Status: StatusSkipped, Note: "Skipped by flag"})
		return
	}

	findings, err := specdoc.NewChecker(repoRoot, r.cfg.Gate.SpecsDir, r.logger).Check()
	if err != nil {
		r.addStage(rep, StageResult{Name: "spec", Status: StatusSkipped,
			Note: fmt.Sprintf("Spec documents not found; skipped spec stage (%v)", err)})
		return
	}
	if len(findings) == 0 {
		r.addStage(rep, StageResult{Name: "spec", Status: StatusPassed, Note: "Spec verification passed"})
		return
	}
	r.addStage(rep, StageResult{Name: "spec", Status: StatusFailed,
		ErrorCount: len(findings), Note: "Spec verification reported issues"})
}

func (r *Runner) runCodeStage(rep *Report, repoRoot string) {
	if r.cfg.Gate.SkipCode {
		r.addStage(rep, StageResult{Name: "code", Status: StatusSkipped, Note: "Skipped by flag"})
		return
	}

	codeRoot := r.resolveStageRoot(r.cfg.Gate.CodeRoot, repoRoot)
	if info, err := os.Stat(codeRoot); err != nil || !info.IsDir() {
		r.addStage(rep, StageResult{Name: "code", Status: StatusSkipped,
			Note: "Code root not provided/found; skipped code architecture stage"})
		return
	}

	res, err := verify.Run(verify.Options{
		Root:       codeRoot,
		Extensions: r.cfg.Scan.Extensions,
		Excludes:   r.cfg.Scan.Excludes,
		Logger:     r.logger,
	})
	if err != nil {
		r.addStage(rep, StageResult{Name: "code", Status: StatusFailed,
			Note: fmt.Sprintf("Code verification failed to run: %v", err)})
		return
	}

	// Per-stage structured report sits next to the combined one.
	stageReportPath := filepath.Join(filepath.Dir(gateReportPath(r.cfg, repoRoot)), "archgate-code-verify.json")
	note := "Code architecture verification passed"
	status := StatusPassed
	if !res.Passed() {
		note = "Code architecture verification reported errors"
		status = StatusFailed
	}
	if err := report.New("include", res).Write(stageReportPath); err != nil {
		r.logger.Warn("failed to write code stage report", slog.String("error", err.Error()))
		stageReportPath = ""
	}
	r.addStage(rep, StageResult{Name: "code", Status: status,
		ErrorCount: res.ErrorCount, Note: note, OutputPath: stageReportPath})
}

func (r *Runner) runOOPStage(rep *Report, repoRoot string) {
	if r.cfg.Gate.SkipOOP {
		r.addStage(rep, StageResult{Name: "oop", Status: StatusSkipped, Note: "Skipped by flag"})
		return
	}

	configured := r.cfg.Gate.OOPRoot
	if configured == "" {
		configured = r.cfg.Gate.CodeRoot
	}
	oopRoot := r.resolveStageRoot(configured, repoRoot)
	if info, err := os.Stat(oopRoot); err != nil || !info.IsDir() {
		r.addStage(rep, StageResult{Name: "oop", Status: StatusSkipped,
			Note: "OOP root not provided/found; skipped identifier stage"})
		return
	}

	res, err := verify.RunOOP(verify.Options{
		Root:       oopRoot,
		Extensions: r.cfg.Scan.OOPExtensions,
		Excludes:   r.cfg.Scan.Excludes,
		Logger:     r.logger,
	})
	if err != nil {
		r.addStage(rep, StageResult{Name: "oop", Status: StatusFailed,
			Note: fmt.Sprintf("OOP verification failed to run: %v", err)})
		return
	}
	if res.NoSources {
		r.addStage(rep, StageResult{Name: "oop", Status: StatusSkipped,
			Note: "No OOP layer sources found; skipped identifier stage"})
		return
	}

	stageReportPath := filepath.Join(filepath.Dir(gateReportPath(r.cfg, repoRoot)), "archgate-oop-verify.json")
	note := "OOP architecture verification passed"
	status := StatusPassed
	if !res.Passed() {
		note = "OOP architecture verification reported errors"
		status = StatusFailed
	}
	if err := report.New("identifier", res).Write(stageReportPath); err != nil {
		r.logger.Warn("failed to write oop stage report", slog.String("error", err.Error()))
		stageReportPath = ""
	}
	r.addStage(rep, StageResult{Name: "oop", Status: status,
		ErrorCount: res.ErrorCount, Note: note, OutputPath: stageReportPath})
}

// resolveStageRoot maps a configured stage root onto the repo root:
// empty falls back to the scan root, then the repo root itself; relative
// paths are joined to the repo root.
func (r *Runner) resolveStageRoot(configured, repoRoot string) string {
	root := configured
	if root == "" {
		root = r.cfg.Root
	}
	if root == "" {
		root = repoRoot
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(repoRoot, root)
	}
	return root
}

func gateReportPath(cfg *config.Config, repoRoot string) string {
	p := cfg.Gate.ReportPath
	if !filepath.IsAbs(p) {
		p = filepath.Join(repoRoot, p)
	}
	return p
}

func writeReport(rep *Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal gate report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write gate report: %w", err)
	}
	return nil
}
