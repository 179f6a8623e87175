// Package extract pulls dependency references out of raw source lines.
// Detection is deliberately textual: no symbol table, no AST. That keeps
// both bindings cheap and predictable at the cost of accepting some false
// positives, which is the documented tradeoff of this gate.
package extract

import (
	"os"
	"strings"
)

// ReadLines reads a file and splits it into lines, tolerating both LF and
// CRLF endings.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

// IsCommentLine reports whether a line opens with a line-comment marker
// in either source ecosystem: // and /* (C family, C#), ' (VB).
func IsCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "'")
}

// CodeLineOptions controls CodeLines counting.
type CodeLineOptions struct {
	// LineComments are prefixes that mark a whole line as comment.
	LineComments []string
	// SkipDirectives excludes preprocessor lines (leading '#') from the
	// count; directives are not judgment logic.
	SkipDirectives bool
}

// CodeLines counts non-blank, non-comment lines, correctly spanning
// multi-line block comments.
func CodeLines(lines []string, opts CodeLineOptions) int {
	count := 0
	inBlock := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if inBlock {
			if strings.Contains(stripped, "*/") {
				inBlock = false
			}
			continue
		}
		if strings.HasPrefix(stripped, "/*") && !strings.Contains(stripped[2:], "*/") {
			inBlock = true
			continue
		}
		if stripped == "" {
			continue
		}
		if isLineComment(stripped, opts.LineComments) {
			continue
		}
		if opts.SkipDirectives && strings.HasPrefix(stripped, "#") {
			continue
		}
		count++
	}
	return count
}

func isLineComment(stripped string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(stripped, p) {
			return true
		}
	}
	return false
}

// CCodeLineComments are the comment prefixes used when counting code lines
// in C-family sources.
var CCodeLineComments = []string{"//", "/*", "*", "*/"}

// OOPCodeLineComments are the comment prefixes used when counting code
// lines in VB/C# sources.
var OOPCodeLineComments = []string{"'", "//"}
