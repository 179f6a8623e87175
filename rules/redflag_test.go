package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/archgate/finding"
)

func TestEmptyIdea(t *testing.T) {
	f := EmptyIdea("/repo/project/features/m/ida_m.c", 3)
	require.NotNil(t, f)
	assert.Equal(t, finding.SeverityWarning, f.Severity)
	assert.Equal(t, "red-flag-empty-idea", f.Rule)
	assert.Equal(t, 0, f.Line)
	assert.Contains(t, f.Message, "3 code line(s)")

	assert.Nil(t, EmptyIdea("/repo/project/features/m/ida_m.c", MinIdeaCodeLines))
	assert.Nil(t, EmptyIdea("/repo/project/features/m/ida_m.c", 50))
}

func TestEmptyIdeaOOPWording(t *testing.T) {
	f := EmptyIdeaOOP("/repo/src/ida_Motor.vb", 3)
	require.NotNil(t, f)
	assert.Equal(t, finding.SeverityWarning, f.Severity)
	assert.Equal(t, "red-flag-empty-idea", f.Rule)
	assert.Contains(t, f.Message, "Possible Empty Idea: only 3 code line(s)")
	assert.Contains(t, f.Message, "domain logic is not in prx_/poi_")

	assert.Nil(t, EmptyIdeaOOP("/repo/src/ida_Motor.vb", MinIdeaCodeLines))
}

func TestFatPoiesisWholeFile(t *testing.T) {
	lines := []string{
		"void poi_m_write(int v) {",
		"    if (v > threshold) {", // domain conditional
		"        return;",
		"    }",
		"    switch (mode) {", // and another
		"    }",
		"}",
	}

	f := FatPoiesisWholeFile("/repo/project/features/m/poi_m.c", lines)
	require.NotNil(t, f)
	assert.Equal(t, finding.SeverityWarning, f.Severity)
	assert.Equal(t, "red-flag-fat-poiesis", f.Rule)
	assert.Equal(t, 0, f.Line, "include binding reports at file level")
	assert.Contains(t, f.Message, "2 domain-meaningful conditional(s)")

	assert.Nil(t, FatPoiesisWholeFile("x.c", []string{"hal_write(reg, v);"}))
}

func TestFatPoiesisFirstLine(t *testing.T) {
	lines := []string{
		"' if mode is checked here it is a comment",
		"Public Sub Write(v As Integer)",
		"    If state = Running Then",
		"    End If",
		"    If flag Then",
		"    End If",
		"End Sub",
	}

	f := FatPoiesisFirstLine("/repo/src/poi_Motor.vb", lines)
	require.NotNil(t, f)
	assert.Equal(t, 3, f.Line, "first non-comment hit only")
	assert.Equal(t, "red-flag-fat-poiesis", f.Rule)
	assert.Equal(t, finding.SeverityWarning, f.Severity)

	assert.Nil(t, FatPoiesisFirstLine("x.vb", []string{"Return 1"}))
}
