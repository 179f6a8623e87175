package extract

import (
	"path"
	"regexp"
	"strings"
)

// Reference is one line-level dependency mention inside a file.
type Reference struct {
	Line int    // 1-based
	Path string // the include target as written
	Leaf string // the target's leaf name
	Raw  string // the full source line
}

var (
	includeRe       = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^">]+)[">]`)
	systemIncludeRe = regexp.MustCompile(`^\s*#\s*include\s*<`)
)

// Includes extracts quoted include directives from a C-family source file.
// Angle-bracket (system library) includes are dropped here so the rule
// engine only ever sees project-relative references.
func Includes(filePath string) ([]Reference, error) {
	lines, err := ReadLines(filePath)
	if err != nil {
		return nil, err
	}
	var refs []Reference
	for i, line := range lines {
		m := includeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if systemIncludeRe.MatchString(line) {
			continue
		}
		target := m[1]
		refs = append(refs, Reference{
			Line: i + 1,
			Path: target,
			Leaf: path.Base(strings.ReplaceAll(target, `\`, "/")),
			Raw:  strings.TrimRight(line, "\n"),
		})
	}
	return refs, nil
}

var depsSegmentRe = regexp.MustCompile(`(^|[\\/])deps([\\/]|$)`)

// TargetsDepsPath reports whether an include target reaches into the
// dependency repository by path.
func TargetsDepsPath(target string) bool {
	return depsSegmentRe.MatchString(target)
}
