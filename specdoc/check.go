// Package specdoc validates specification-document hygiene: filename
// numbering, heading structure, encoding artifacts, and README
// cross-references. Its pass/fail is independent of the code gate.
package specdoc

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/c360studio/archgate/finding"
)

var (
	// Numbered sections: NN_slug.md. Appendices: A<index>_slug.md.
	specNameRe = regexp.MustCompile(`^(?:(\d{2})|A(\d+))_([a-z0-9_]+)\.md$`)

	h1NumberRe   = regexp.MustCompile(`^\s*(\d+)\.\s+`)
	h1AppendixRe = regexp.MustCompile(`^\s*Appendix\s+[A-Z]\.`)
	headingNumRe = regexp.MustCompile(`^\s*(\d+)\.`)
	specXrefRe   = regexp.MustCompile(`specs/([A-Za-z0-9_]+\.md)`)
	encodingJunk = regexp.MustCompile(`\?{2,}`)
	utf8BOM      = []byte{0xEF, 0xBB, 0xBF}
)

// Checker validates the spec documents of a repository.
type Checker struct {
	repoRoot string
	specsDir string
	logger   *slog.Logger
}

// NewChecker creates a Checker. specsDir is relative to repoRoot.
func NewChecker(repoRoot, specsDir string, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{repoRoot: repoRoot, specsDir: specsDir, logger: logger}
}

// Check validates every spec document plus README hygiene. A missing specs
// directory is fatal; everything else becomes findings.
func (c *Checker) Check() ([]finding.Finding, error) {
	specsPath := filepath.Join(c.repoRoot, c.specsDir)
	entries, err := os.ReadDir(specsPath)
	if err != nil {
		return nil, fmt.Errorf("missing folder: %s", specsPath)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no spec files found in: %s", specsPath)
	}
	sort.Strings(names)

	var set finding.Set
	for _, name := range names {
		c.checkFile(&set, specsPath, name)
	}
	c.checkReadme(&set)

	return set.Sorted(), nil
}

func (c *Checker) checkFile(set *finding.Set, specsPath, name string) {
	path := filepath.Join(specsPath, name)
	relName := c.specsDir + "/" + name

	m := specNameRe.FindStringSubmatch(name)
	if m == nil {
		set.Error(path, 0, "spec.name",
			fmt.Sprintf("Invalid spec filename (expected NN_slug.md or A#_slug.md): %s", relName))
		return
	}
	fileNumber := -1
	if m[1] != "" {
		fileNumber, _ = strconv.Atoi(m[1])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		set.Error(path, 0, "read", fmt.Sprintf("Failed to read file: %v", err))
		return
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if bytes.ContainsRune(data, '�') {
		set.Error(path, 0, "spec.encoding",
			fmt.Sprintf("Encoding replacement character (U+FFFD) found: %s", relName))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		set.Error(path, 0, "spec.empty", fmt.Sprintf("Empty file: %s", relName))
		return
	}

	headings := parseHeadings(data)
	if len(headings) == 0 || headings[0].Level != 1 {
		set.Error(path, 0, "spec.heading",
			fmt.Sprintf("H1 does not start with a section number (expected '# N. ...' or 'Appendix X. ...'): %s", relName))
		return
	}
	if first := firstContentLine(data); headings[0].Line != first {
		set.Error(path, first, "spec.heading",
			fmt.Sprintf("Content precedes the H1; the document must open with its heading: %s", relName))
	}

	h1 := headings[0]
	h1Number := -1
	switch {
	case h1NumberRe.MatchString(h1.Text):
		n, _ := strconv.Atoi(h1NumberRe.FindStringSubmatch(h1.Text)[1])
		h1Number = n
		if fileNumber >= 0 && n != fileNumber {
			set.Error(path, h1.Line, "spec.heading",
				fmt.Sprintf("H1 section number mismatch: %s (H1=%d, filename=%02d)", relName, n, fileNumber))
		}
	case h1AppendixRe.MatchString(h1.Text):
		// Appendix heading form; no number to reconcile.
	default:
		set.Error(path, h1.Line, "spec.heading",
			fmt.Sprintf("H1 does not start with a section number (expected '# N. ...' or 'Appendix X. ...'): %s", relName))
	}

	// Numbered sub-headings must either carry the H1's section number or
	// restart locally at 1.
	if h1Number >= 0 && fileNumber >= 0 {
		var numbered []heading
		distinct := map[int]bool{}
		for _, h := range headings[1:] {
			if h.Level < 2 {
				continue
			}
			if nm := headingNumRe.FindStringSubmatch(h.Text); nm != nil {
				n, _ := strconv.Atoi(nm[1])
				numbered = append(numbered, h)
				distinct[n] = true
			}
		}
		if len(numbered) > 0 {
			prefixed := len(distinct) == 1 && distinct[h1Number]
			local := distinct[1]
			if !prefixed && !local {
				first := numbered[0]
				set.Error(path, first.Line, "spec.heading",
					fmt.Sprintf("Numbered headings do not match H1 %d and do not start at 1: %s:%d (%q)",
						h1Number, relName, first.Line, first.Text))
			}
		}
	}
}

// checkReadme applies lightweight README hygiene plus cross-reference
// existence checks for specs/ links it mentions.
func (c *Checker) checkReadme(set *finding.Set) {
	readmePath := filepath.Join(c.repoRoot, "README.md")
	data, err := os.ReadFile(readmePath)
	if err != nil {
		set.Error(readmePath, 0, "spec.xref", "README.md not found")
		return
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if bytes.ContainsRune(data, '�') {
		set.Error(readmePath, 0, "spec.encoding", "Encoding replacement character (U+FFFD) found: README.md")
	}
	if encodingJunk.Match(data) {
		set.Error(readmePath, 0, "spec.encoding", "Suspicious '??' sequences found: README.md (likely encoding artifacts)")
	}

	for _, m := range specXrefRe.FindAllSubmatch(data, -1) {
		ref := string(m[1])
		target := filepath.Join(c.repoRoot, c.specsDir, ref)
		if _, err := os.Stat(target); err != nil {
			set.Error(readmePath, 0, "spec.xref",
				fmt.Sprintf("README references missing spec document: %s/%s", c.specsDir, ref))
		}
	}
}

// heading is one markdown heading with its 1-based source line.
type heading struct {
	Level int
	Text  string
	Line  int
}

// parseHeadings extracts headings via the goldmark AST rather than
// regex-scanning heading syntax, so setext headings and edge cases are
// handled consistently.
func parseHeadings(source []byte) []heading {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var out []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		line := 0
		if segs := h.Lines(); segs.Len() > 0 {
			line = lineOfOffset(source, segs.At(0).Start)
		}
		out = append(out, heading{
			Level: h.Level,
			Text:  string(h.Text(source)),
			Line:  line,
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// firstContentLine returns the 1-based line number of the first non-blank
// line of the document.
func firstContentLine(source []byte) int {
	for i, line := range bytes.Split(source, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) > 0 {
			return i + 1
		}
	}
	return 1
}

// lineOfOffset converts a byte offset to a 1-based line number.
func lineOfOffset(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
