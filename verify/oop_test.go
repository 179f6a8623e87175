package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vbIdeaBody = `Public Class ida_Motor
    Public Function Decide(v As Integer) As Integer
        Dim out As Integer = v
        If v > 10 Then out = 10
        If v < 0 Then out = 0
        out = out * 2
        out = out + 1
        out = out - 1
        Return out
    End Function
End Class
`

func TestRunOOPNoLayerFilesIsNoOp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/Form1.vb", "Public Class Form1\nEnd Class\n")
	write(t, root, "src/Program.cs", "class Program {}\n")

	res, err := RunOOP(Options{Root: root})
	require.NoError(t, err)

	assert.True(t, res.NoSources)
	assert.Equal(t, 2, res.FilesScanned)
	assert.Equal(t, 0, res.LayerFiles)
	assert.True(t, res.Passed())
	assert.Equal(t, 0, res.ExitCode())
	assert.Empty(t, res.Findings)
}

func TestRunOOPCleanTree(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/ida_Motor.vb", vbIdeaBody)
	write(t, root, "src/prx_Motor.vb", "Public Class prx_Motor\n    Dim p As New poi_Motor()\nEnd Class\n")
	write(t, root, "src/poi_Motor.vb", "Public Class poi_Motor\n    Sub Write(v As Integer)\n    End Sub\nEnd Class\n")

	res, err := RunOOP(Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, 3, res.LayerFiles)
	assert.True(t, res.Passed())
	assert.Empty(t, res.Findings)
}

func TestRunOOPForbiddenImportAndCall(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/ida_Motor.vb", `Imports System.Windows.Forms
Public Class ida_Motor
    Sub Alert()
        MessageBox.Show("e")
        Thread.Sleep(100)
        Dim a = 1
        Dim b = 2
        Dim c = 3
        Dim d = 4
    End Sub
End Class
`)

	res, err := RunOOP(Options{Root: root})
	require.NoError(t, err)

	assert.False(t, res.Passed())
	rs := ruleSet(res.Findings)
	assert.Equal(t, 1, rs["ida-no-winforms"])
	assert.Equal(t, 1, rs["ida-no-messagebox"])
	assert.Equal(t, 1, rs["ida-no-threadsleep"])
}

func TestRunOOPReverseDependency(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/ida_Motor.vb", vbIdeaBody)
	write(t, root, "src/poi_Motor.vb",
		"Public Class poi_Motor\n    Dim m As New ida_Motor()\nEnd Class\n")

	res, err := RunOOP(Options{Root: root})
	require.NoError(t, err)

	require.Equal(t, 1, res.ErrorCount)
	f := res.Findings[0]
	assert.Equal(t, "poi_no-idea-ref", f.Rule)
	assert.Equal(t, 2, f.Line)
}

func TestRunOOPCrossFeature(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/ida_Motor.vb", vbIdeaBody)
	write(t, root, "src/prx_Motor.vb",
		"Public Class prx_Motor\n    Dim d As New prx_Display()\nEnd Class\n")
	write(t, root, "src/prx_Display.vb", "Public Class prx_Display\nEnd Class\n")

	res, err := RunOOP(Options{Root: root})
	require.NoError(t, err)

	require.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, "cross-feature-layer-ref", res.Findings[0].Rule)
}

func TestRunOOPRedFlagsAreAdvisory(t *testing.T) {
	root := t.TempDir()
	// Tiny idea class and a poiesis class with a domain conditional.
	write(t, root, "src/ida_Pump.vb", "Public Class ida_Pump\nEnd Class\n")
	write(t, root, "src/poi_Pump.vb",
		"Public Class poi_Pump\n    Sub W(v As Integer)\n        If state = 1 Then Return\n    End Sub\nEnd Class\n")

	res, err := RunOOP(Options{Root: root})
	require.NoError(t, err)

	assert.True(t, res.Passed())
	assert.Equal(t, 2, res.WarningCount)
	rs := ruleSet(res.Findings)
	assert.Equal(t, 1, rs["red-flag-empty-idea"])
	assert.Equal(t, 1, rs["red-flag-fat-poiesis"])
}

func TestRunOOPMissingRoot(t *testing.T) {
	_, err := RunOOP(Options{Root: "/definitely/not/here"})
	assert.Error(t, err)
}
