package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/archgate/finding"
	"github.com/c360studio/archgate/verify"
)

func TestRenderPassed(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &verify.Result{Root: "/repo", FilesScanned: 8})

	assert.Contains(t, buf.String(), "PASSED (8 file(s) verified, 0 violations)")
}

func TestRenderPassedWithWarnings(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &verify.Result{
		Root:         "/repo",
		FilesScanned: 8,
		WarningCount: 1,
		Findings: []finding.Finding{
			{Severity: finding.SeverityWarning, File: "/repo/a.c", Line: 0, Rule: "red-flag-empty-idea", Message: "thin"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "PASSED with warnings")
	assert.Contains(t, out, "(advisory) a.c:0 [red-flag-empty-idea] thin")
}

func TestRenderFailed(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &verify.Result{
		Root:         "/repo",
		FilesScanned: 8,
		ErrorCount:   2,
		WarningCount: 1,
		Findings: []finding.Finding{
			{Severity: finding.SeverityError, File: "/repo/project/features/m/poi_m.c", Line: 3, Rule: "poi.include", Message: "bad include"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "FAILED (2 error(s), 1 warning(s))")
	assert.Contains(t, out, "project/features/m/poi_m.c:3 [poi.include] bad include")
}

func TestRenderNoSources(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &verify.Result{Root: "/repo", NoSources: true})

	assert.Contains(t, buf.String(), "no source files to verify under /repo")
}

func TestDisplayPathOutsideRoot(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &verify.Result{
		Root:       "/repo",
		ErrorCount: 1,
		Findings: []finding.Finding{
			{Severity: finding.SeverityError, File: "/elsewhere/x.c", Line: 1, Rule: "r", Message: "m"},
		},
	})

	assert.Contains(t, buf.String(), "/elsewhere/x.c:1")
}
