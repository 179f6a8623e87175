package verify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/archgate/finding"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const ideaBody = `#include "cfg_core.h"

int ida_motor_decide(int v) {
    int out = v;
    if (v > 10) { out = 10; }
    if (v < 0) { out = 0; }
    out = out * 2;
    out = out + 1;
    out = out - 1;
    out = out / 1;
    return out;
}
`

// conformantTree writes a minimal passing layout with one feature.
func conformantTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write(t, root, "infra/bootstrap/cfg_core.h", "#ifndef CFG_CORE_H\n#define CFG_CORE_H\n#endif\n")
	write(t, root, "deps/.keep", "")
	write(t, root, "project/config/cfg_project.h", "#ifndef CFG_PROJECT_H\n#define CFG_PROJECT_H\n#endif\n")
	write(t, root, "project/features/motor/ida_motor.h", "#ifndef IDA_MOTOR_H\n#define IDA_MOTOR_H\n#endif\n")
	write(t, root, "project/features/motor/ida_motor.c", ideaBody)
	return root
}

func ruleSet(fs []finding.Finding) map[string]int {
	out := map[string]int{}
	for _, f := range fs {
		out[f.Rule]++
	}
	return out
}

func TestRunConformantTree(t *testing.T) {
	root := conformantTree(t)

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	assert.True(t, res.Passed())
	assert.Equal(t, 0, res.ExitCode())
	assert.Equal(t, 0, res.ErrorCount)
	assert.Equal(t, 4, res.FilesScanned)
	assert.Empty(t, res.Findings)
}

func TestRunMissingRootIsFatal(t *testing.T) {
	_, err := Run(Options{Root: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root folder not found")
}

func TestRunEmptyRoot(t *testing.T) {
	root := t.TempDir()

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	assert.True(t, res.NoSources)
	assert.False(t, res.Passed())
	assert.Equal(t, 2, res.ExitCode())

	rs := ruleSet(res.Findings)
	// Missing layout pieces plus the no-sources error.
	assert.Equal(t, 5, rs["layout.required"])
}

func TestRunForbiddenInclude(t *testing.T) {
	root := conformantTree(t)
	write(t, root, "project/features/motor/prx_motor.c",
		"#include \"ida_motor.h\"\n#include \"prx_motor.h\"\n")
	write(t, root, "project/features/motor/prx_motor.h", "")

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	assert.False(t, res.Passed())
	require.Equal(t, 1, res.ErrorCount)
	f := res.Findings[0]
	assert.Equal(t, "prx.include", f.Rule)
	assert.Equal(t, 1, f.Line)
	assert.True(t, strings.HasSuffix(f.File, "prx_motor.c"))
}

func TestRunSameFeaturePoiesisInclude(t *testing.T) {
	root := conformantTree(t)
	// Poiesis including its own feature's config and db is fine; including
	// the idea header is not.
	write(t, root, "project/features/motor/cfg_motor.h", "")
	write(t, root, "project/features/motor/db_motor.h", "")
	write(t, root, "project/features/motor/poi_motor.c",
		"#include \"cfg_motor.h\"\n#include \"db_motor.h\"\n#include \"ida_motor.h\"\n")

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	require.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, "poi.include", res.Findings[0].Rule)
	assert.Equal(t, 3, res.Findings[0].Line)
}

func TestRunModuleResource(t *testing.T) {
	root := conformantTree(t)
	write(t, root, "project/features/motor/cfg_motor.h", "")
	write(t, root, "infra/service/svc_log.c", "#include \"cfg_motor.h\"\n")

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	require.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, "module.resource", res.Findings[0].Rule)
}

func TestRunRedFlagsWarnWithoutFailing(t *testing.T) {
	root := conformantTree(t)
	// Near-empty idea file and a poiesis file with domain conditionals.
	write(t, root, "project/features/pump/ida_pump.c", "#include \"cfg_core.h\"\nint x;\n")
	write(t, root, "project/features/pump/poi_pump.c",
		"void poi_pump_write(int mode) {\n    if (mode > 1) { return; }\n}\n")

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	assert.True(t, res.Passed(), "warnings never fail the gate")
	assert.Equal(t, 0, res.ExitCode())
	assert.Equal(t, 2, res.WarningCount)

	rs := ruleSet(res.Findings)
	assert.Equal(t, 1, rs["red-flag-empty-idea"])
	assert.Equal(t, 1, rs["red-flag-fat-poiesis"])
}

func TestRunNestedDependencyUnit(t *testing.T) {
	root := conformantTree(t)
	// A vendored architecture unit: role files under replicated segments
	// pass; its own non-convention sources are ignored.
	write(t, root, "deps/extern/libfoo/infra/bootstrap/ida_core.c", "int core;\n")
	write(t, root, "deps/extern/libfoo/project/features/fan/ida_fan.c", ideaBody)
	write(t, root, "deps/extern/libfoo/src/helper.c", "int h;\n")

	res, err := Run(Options{Root: root})
	require.NoError(t, err)
	assert.True(t, res.Passed())
	assert.Equal(t, 0, res.ErrorCount)
}

func TestRunMisplacedRole(t *testing.T) {
	root := conformantTree(t)
	write(t, root, "infra/service/ida_stray.c", ideaBody)

	res, err := Run(Options{Root: root})
	require.NoError(t, err)

	require.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, "path.project_feature", res.Findings[0].Rule)
}

func TestRunIdempotent(t *testing.T) {
	root := conformantTree(t)
	write(t, root, "project/features/motor/prx_motor.c", "#include \"ida_motor.h\"\n")

	first, err := Run(Options{Root: root, Workers: 4})
	require.NoError(t, err)
	second, err := Run(Options{Root: root, Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Findings, second.Findings)
	assert.Equal(t, first.ErrorCount, second.ErrorCount)
}
