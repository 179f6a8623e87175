package finding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSortedOrdersAndDedupes(t *testing.T) {
	var s Set
	s.Error("b.c", 10, "path.idea", "wrong directory")
	s.Error("a.c", 5, "ida.include", "forbidden include")
	s.Error("a.c", 2, "ida.include", "forbidden include")
	s.Warn("a.c", 2, "red-flag-empty-idea", "suspiciously small")
	// Duplicate of the second entry; must collapse to one.
	s.Error("a.c", 5, "ida.include", "forbidden include")

	out := s.Sorted()
	assert.Len(t, out, 4)
	assert.Equal(t, 5, s.Len(), "raw count keeps duplicates")

	assert.Equal(t, "a.c", out[0].File)
	assert.Equal(t, 2, out[0].Line)
	assert.Equal(t, "ida.include", out[0].Rule)
	assert.Equal(t, "red-flag-empty-idea", out[1].Rule)
	assert.Equal(t, 5, out[2].Line)
	assert.Equal(t, "b.c", out[3].File)
}

func TestSortedDeterministicAcrossInsertionOrder(t *testing.T) {
	a := Finding{Severity: SeverityError, File: "x.c", Line: 1, Rule: "r1", Message: "m"}
	b := Finding{Severity: SeverityWarning, File: "x.c", Line: 1, Rule: "r2", Message: "m"}

	var s1, s2 Set
	s1.Add(a, b)
	s2.Add(b, a)

	assert.Equal(t, s1.Sorted(), s2.Sorted())
}

func TestCountAndPassed(t *testing.T) {
	fs := []Finding{
		{Severity: SeverityWarning, Rule: "red-flag-fat-poi"},
		{Severity: SeverityWarning, Rule: "red-flag-empty-idea"},
	}
	errs, warns := Count(fs)
	assert.Equal(t, 0, errs)
	assert.Equal(t, 2, warns)
	assert.True(t, Passed(fs), "warnings alone must not fail the gate")

	fs = append(fs, Finding{Severity: SeverityError, Rule: "poi.include"})
	errs, warns = Count(fs)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warns)
	assert.False(t, Passed(fs))
}

func TestPassedEmpty(t *testing.T) {
	assert.True(t, Passed(nil))
}
